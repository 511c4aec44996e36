package repositories

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/marchanddesable/sablebot/sablebot/database"
	"github.com/marchanddesable/sablebot/sablebot/database/models"
)

var ErrTicketNotFound = errors.New("ticket not found")

type TicketRepository interface {
	Get(ctx context.Context, userID string) (*models.Ticket, error)
	Create(ctx context.Context, userID, channelID string) (*models.Ticket, error)
	Save(ctx context.Context, ticket *models.Ticket) error
}

type ticketRepository struct {
	store *database.Store[models.Ticket]
	now   func() time.Time
}

func NewTicketRepository(store *database.Store[models.Ticket]) TicketRepository {
	return &ticketRepository{store: store, now: time.Now}
}

func (r *ticketRepository) Get(ctx context.Context, userID string) (*models.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ticket, ok, err := r.store.Get(userID)
	if err != nil {
		slog.Error("Failed to load ticket",
			slog.String("type", "db"),
			slog.String("user_id", userID),
			slog.Any("error", err))
		return nil, err
	}
	if !ok {
		return nil, ErrTicketNotFound
	}
	return ticket, nil
}

func (r *ticketRepository) Create(ctx context.Context, userID, channelID string) (*models.Ticket, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	ticket := models.NewTicket(userID, channelID, r.now())
	if err := r.Save(ctx, ticket); err != nil {
		return nil, err
	}
	return ticket, nil
}

func (r *ticketRepository) Save(ctx context.Context, ticket *models.Ticket) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := r.store.Put(ticket.UserID, ticket); err != nil {
		slog.Error("Failed to save ticket",
			slog.String("type", "db"),
			slog.String("user_id", ticket.UserID),
			slog.Any("error", err))
		return err
	}
	return nil
}
