package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"telemora/internal/config"
	"telemora/internal/database"
	"telemora/internal/handlers"
	"telemora/internal/repositories"
	"telemora/internal/schedulers"
	"telemora/internal/services"
	"telemora/internal/telemora"
	"telemora/internal/tonbot"
	"telemora/internal/tonfi"
	"telemora/internal/util"
	"time"

	"github.com/xssnick/tonutils-go/address"
	"github.com/xssnick/tonutils-go/tlb"
	"github.com/xssnick/tonutils-go/ton"
)

var log = config.InitLogger()

const usage = `usage: app <command> [flags] [args]

commands:
  deploy                      deploy the contract from TELEMORA_CODE_BOC
  info                        print balance, admin address and commission
  withdraw <to> <amount>      withdraw amount TON to address (admin wallet)
  pay <seller> <amount>       pay seller through the contract from the operator wallet
  serve                       run the telegram bot, snapshot scheduler and manifest server
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1], os.Args[2:]); err != nil {
		log.Error(err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, name string, args []string) error {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	value := fs.String("value", "", "TON attached to deploy/withdraw, overrides DEPLOY_VALUE/CALL_VALUE")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log.Infoln("Config initialized")

	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.close()

	// info reads chain state only
	if name != "info" {
		if err := a.openStorage(); err != nil {
			return err
		}
	}

	switch name {
	case "deploy":
		v, err := valueOr(*value, cfg.Contract.DeployValue)
		if err != nil {
			return err
		}
		return a.deploy(ctx, v)
	case "info":
		return a.info(ctx)
	case "withdraw":
		v, err := valueOr(*value, cfg.Contract.CallValue)
		if err != nil {
			return err
		}
		return a.withdraw(ctx, v, fs.Args())
	case "pay":
		return a.pay(ctx, fs.Args())
	case "serve":
		return a.serve(ctx)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", name)
	}
}

type app struct {
	cfg      *config.AppConfig
	api      ton.APIClientWrapped
	contract *telemora.Telemora
	sender   telemora.Sender
	psql     *database.Postgres
	cs       *services.ContractService
	tcs      *services.TonConnectService
}

func newApp(ctx context.Context, cfg *config.AppConfig) (*app, error) {
	api, err := services.InitApi(ctx, &cfg.Ton)
	if err != nil {
		return nil, err
	}
	log.Infoln("Liteserver pool initialized")

	var sender telemora.Sender
	if len(cfg.Ton.Seed) > 0 {
		w, err := services.GetWallet(api, &cfg.Ton)
		if err != nil {
			return nil, err
		}
		sender = w
	} else {
		log.Warn("WALLET_SEED is not set, operator wallet commands are disabled")
	}

	contract, err := openContract(&cfg.Contract)
	if err != nil {
		return nil, err
	}
	log.Infof("Contract %s", contract.Address.String())

	return &app{
		cfg:      cfg,
		api:      api,
		contract: contract,
		sender:   sender,
		cs:       services.NewContractService(contract, contract.Provider(api), sender, nil, nil, nil),
	}, nil
}

// openStorage connects Postgres and redis and rebuilds the services on top of them.
func (a *app) openStorage() error {
	psql, err := database.NewPostgres(a.cfg.Postgres)
	if err != nil {
		return err
	}
	if err := psql.Ping(); err != nil {
		psql.Close()
		return fmt.Errorf("ping postgres: %w", err)
	}
	if err := psql.Migrate(); err != nil {
		psql.Close()
		return err
	}
	log.Infoln("Database initialized")

	redisCli, err := database.InitRedisCli(a.cfg.RedisUrl)
	if err != nil {
		psql.Close()
		return err
	}

	opS := services.NewOperationService(repositories.NewOperationRepository(psql.Db))
	snapshots := repositories.NewSnapshotRepository(psql.Db)
	cache := services.NewGetterCache(redisCli, a.cfg.GetterCacheTTL)

	manifestUrl := a.cfg.ManifestUrl
	if manifestUrl == "" && a.cfg.App.Url != "" {
		manifestUrl = a.cfg.App.Url + "/" + handlers.ManifestFileName
	}

	a.psql = psql
	a.cs = services.NewContractService(a.contract, a.contract.Provider(a.api), a.sender, opS, snapshots, cache)
	a.tcs = services.NewTonConnectService(redisCli, manifestUrl)
	return nil
}

func openContract(cfg *config.ContractConfig) (*telemora.Telemora, error) {
	if cfg.Address != nil {
		return telemora.CreateFromAddress(cfg.Address), nil
	}

	code, err := telemora.ParseCompiledCode(cfg.CodePath)
	if err != nil {
		return nil, fmt.Errorf("load contract code: %w", err)
	}

	return telemora.CreateFromConfig(telemora.Config{
		AdminAddress:  cfg.AdminAddress,
		CommissionBps: cfg.CommissionBps,
	}, code, cfg.Workchain)
}

func (a *app) close() {
	if a.psql != nil {
		if err := a.psql.Close(); err != nil {
			log.Error("Failed to close database: ", err)
		}
	}
	if database.Client != nil {
		if err := database.Client.Close(); err != nil {
			log.Error("Failed to close redis: ", err)
		}
	}
}

func valueOr(s string, def tlb.Coins) (tlb.Coins, error) {
	if s == "" {
		return def, nil
	}
	return util.ParseTON(s)
}

func (a *app) deploy(ctx context.Context, value tlb.Coins) error {
	deployed, err := a.cs.IsDeployed(ctx)
	if err != nil {
		return err
	}
	if deployed {
		fmt.Printf("Contract %s is already deployed\n", a.cs.Address().String())
		return nil
	}

	op, err := a.cs.Deploy(ctx, 0, value)
	if err != nil {
		return err
	}
	fmt.Printf("Deploy sent to %s (operation %d)\n", a.cs.Address().String(), op.Id.Int64)
	return nil
}

func (a *app) info(ctx context.Context) error {
	info, err := a.cs.Info(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("Address:    %s\n", info.Address.String())
	fmt.Printf("Deployed:   %t\n", info.Deployed)
	fmt.Printf("Balance:    %s TON\n", util.FormatTON(info.Balance))
	if !info.Deployed {
		return nil
	}

	admin := info.Admin.String()
	if admin == "" {
		admin = "not set"
	}
	fmt.Printf("Admin:      %s\n", admin)
	fmt.Printf("Commission: %d\n", info.CommissionBps)
	return nil
}

func targetAndAmount(args []string) (*address.Address, tlb.Coins, error) {
	if len(args) != 2 {
		return nil, tlb.Coins{}, errors.New("expected <address> <amount>")
	}

	addr, err := address.ParseAddr(args[0])
	if err != nil {
		return nil, tlb.Coins{}, fmt.Errorf("invalid address %q: %w", args[0], err)
	}

	amount, err := util.ParseTON(args[1])
	if err != nil {
		return nil, tlb.Coins{}, err
	}

	return addr, amount, nil
}

func (a *app) withdraw(ctx context.Context, value tlb.Coins, args []string) error {
	to, amount, err := targetAndAmount(args)
	if err != nil {
		return err
	}

	op, err := a.cs.Withdraw(ctx, 0, value, to, amount)
	if err != nil {
		return err
	}
	fmt.Printf("Withdraw of %s TON to %s sent (operation %d)\n", util.FormatTON(amount), to.String(), op.Id.Int64)
	return nil
}

// pay attaches amount as the message value; the contract splits it between seller and admin.
func (a *app) pay(ctx context.Context, args []string) error {
	seller, amount, err := targetAndAmount(args)
	if err != nil {
		return err
	}

	op, err := a.cs.Pay(ctx, nil, 0, amount, seller)
	if err != nil {
		return err
	}
	fmt.Printf("Payment of %s TON to %s sent (operation %d)\n", util.FormatTON(amount), seller.String(), op.Id.Int64)
	return nil
}

func (a *app) serve(ctx context.Context) error {
	notify := make(chan string, 8)

	job := schedulers.SnapshotContract(a.cs, time.Minute, notify)
	if err := schedulers.Start(ctx, a.cfg.SnapshotCron, job); err != nil {
		return err
	}

	manifest := handlers.NewManifestHandler(a.cfg.ManifestPath, handlers.Manifest{
		Url:     a.cfg.App.Url,
		Name:    a.cfg.App.Name,
		IconUrl: a.cfg.App.IconUrl,
	})
	srv := &http.Server{
		Addr:              a.cfg.HttpAddr,
		Handler:           handlers.NewRouter(manifest),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Infof("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("HTTP server failed: ", err)
		}
	}()

	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error("HTTP server shutdown: ", err)
		}
	}()

	if a.cfg.BotToken == "" {
		log.Warn("TELEGRAM_BOT_TOKEN is not set, bot is disabled")
		<-ctx.Done()
		return nil
	}

	bot := tonbot.NewTgBot(a.cfg.BotToken, a.cs, a.tcs, a.cfg.AdminChatIds,
		a.cfg.Contract.CallValue, a.cfg.Contract.DeployValue)
	if a.cfg.PriceApiUrl != "" {
		bot.WithPrices(tonfi.NewClient(a.cfg.PriceApiUrl))
	}
	return bot.StartBot(ctx, notify)
}
