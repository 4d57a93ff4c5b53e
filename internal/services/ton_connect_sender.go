package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/cameo-engineering/tonconnect"
	"github.com/xssnick/tonutils-go/ton/wallet"
	"github.com/xssnick/tonutils-go/tvm/cell"
)

var (
	ErrNoSession             = errors.New("tonconnect session is not connected")
	ErrStateInitNotSupported = errors.New("tonconnect sender cannot attach state init")
)

// TonConnectSender sends contract messages through the user's own wallet.
// The wallet chooses the send mode, so Message.Mode is not forwarded.
type TonConnectSender struct {
	tcs     *TonConnectService
	session *tonconnect.Session
	key     string
}

func NewTonConnectSender(tcs *TonConnectService, session *tonconnect.Session, key string) *TonConnectSender {
	return &TonConnectSender{
		tcs:     tcs,
		session: session,
		key:     key,
	}
}

func (s *TonConnectSender) Send(ctx context.Context, message *wallet.Message, _ ...bool) error {
	if s.session == nil {
		return ErrNoSession
	}

	msg, err := toTonConnectMessage(message)
	if err != nil {
		return err
	}

	defer func() {
		if err := s.tcs.SaveSession(s.key, s.session); err != nil {
			log.Error("Error saving session: ", err)
		}
	}()

	if _, err := s.tcs.SendMessage(ctx, s.session, *msg); err != nil {
		return fmt.Errorf("tonconnect send: %w", err)
	}
	return nil
}

func toTonConnectMessage(message *wallet.Message) (*tonconnect.Message, error) {
	in := message.InternalMessage
	if in == nil || in.DstAddr == nil {
		return nil, errors.New("message has no destination")
	}
	if in.StateInit != nil {
		return nil, ErrStateInitNotSupported
	}

	body := in.Body
	if body == nil {
		body = cell.BeginCell().EndCell()
	}

	msg, err := tonconnect.NewMessage(
		in.DstAddr.String(),
		in.Amount.Nano().String(),
		tonconnect.WithPayload(body.ToBOC()),
	)
	if err != nil {
		return nil, fmt.Errorf("build tonconnect message: %w", err)
	}
	return msg, nil
}
