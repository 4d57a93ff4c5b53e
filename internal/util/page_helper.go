package util

import (
	"context"
	"sync"
	"telemora/internal/core/interfaces"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// Pages tracks the list page each chat is looking at.
type Pages struct {
	mu    sync.Mutex
	pages map[int64]int
}

func NewPages() *Pages {
	return &Pages{pages: make(map[int64]int)}
}

func (p *Pages) Current(chatId int64) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.pages[chatId]
}

// Move shifts the page by delta within [0, totalPages).
func (p *Pages) Move(chatId int64, delta, totalPages int) int {
	p.mu.Lock()
	defer p.mu.Unlock()

	page := p.pages[chatId] + delta
	if page >= totalPages {
		page = totalPages - 1
	}
	if page < 0 {
		page = 0
	}
	p.pages[chatId] = page
	return page
}

func (p *Pages) Reset(chatId int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.pages, chatId)
}

func NextPage(ctx context.Context, callback *models.CallbackQuery, pages *Pages, totalPages int, b *bot.Bot, c interfaces.Command[*models.Message]) {
	if err := CheckTypeMessage(b, callback); err != nil {
		log.Error(err)
		return
	}

	msg := callback.Message.Message
	pages.Move(msg.Chat.ID, 1, totalPages)
	c.Execute(ctx, msg)
}

func BackPage(ctx context.Context, callback *models.CallbackQuery, pages *Pages, totalPages int, b *bot.Bot, c interfaces.Command[*models.Message]) {
	if err := CheckTypeMessage(b, callback); err != nil {
		log.Error(err)
		return
	}

	msg := callback.Message.Message
	pages.Move(msg.Chat.ID, -1, totalPages)
	c.Execute(ctx, msg)
}

func CloseList(ctx context.Context, callback *models.CallbackQuery, pages *Pages, b *bot.Bot) {
	if err := CheckTypeMessage(b, callback); err != nil {
		log.Error(err)
		return
	}

	msg := callback.Message.Message
	pages.Reset(msg.Chat.ID)

	if err := DeleteMessage(ctx, b, msg.Chat.ID, msg.ID); err != nil {
		log.Error(err)
	}
}

// TotalPages returns how many pages of pageSize hold count items.
func TotalPages(count, pageSize int) int {
	if pageSize <= 0 || count <= 0 {
		return 0
	}
	return (count + pageSize - 1) / pageSize
}
