package tutorial

import (
	"context"
	"errors"
	"log/slog"

	"github.com/marchanddesable/sablebot/sablebot/catalog"
	"github.com/marchanddesable/sablebot/sablebot/database/models"
	"github.com/marchanddesable/sablebot/sablebot/database/repositories"
	"github.com/marchanddesable/sablebot/sablebot/economy"
)

// Rejection classifies a refused onboarding transition.
type Rejection int

const (
	RejectNone Rejection = iota
	// RejectActiveTicket: the user already has an unarchived adventure.
	RejectActiveTicket
	// RejectArchived: the ticket is terminal, no transitions accepted.
	RejectArchived
	// RejectCompleted: the tutorial already reached its last step.
	RejectCompleted
	// RejectNoTicket: no onboarding session exists for the user.
	RejectNoTicket
)

func (r Rejection) Rejected() bool {
	return r != RejectNone
}

// BeginResult reports ticket creation.
type BeginResult struct {
	Rejection Rejection
	Ticket    *models.Ticket
}

// AdvanceResult reports a step transition and any reward granted by it.
type AdvanceResult struct {
	Rejection Rejection
	Step      int
	Completed bool

	// Step 3 first-entry grant.
	GrantedArme  *catalog.Item
	GrantedSable int64
}

// Service drives the onboarding ticket state machine. Steps advance
// strictly one at a time; step 3 hands out the starter weapon and step 6
// the completion bonus, each exactly once.
type Service struct {
	tickets repositories.TicketRepository
	economy *economy.Service
}

func NewService(tickets repositories.TicketRepository, eco *economy.Service) *Service {
	return &Service{tickets: tickets, economy: eco}
}

// Begin opens an onboarding session for the user. A user whose previous
// adventure was archived may start a new one.
func (s *Service) Begin(ctx context.Context, userID, channelID string) (BeginResult, error) {
	existing, err := s.tickets.Get(ctx, userID)
	if err != nil && !errors.Is(err, repositories.ErrTicketNotFound) {
		return BeginResult{}, err
	}
	if existing != nil && !existing.Archive {
		return BeginResult{Rejection: RejectActiveTicket, Ticket: existing}, nil
	}

	ticket, err := s.tickets.Create(ctx, userID, channelID)
	if err != nil {
		return BeginResult{}, err
	}
	slog.Info("Adventure started",
		slog.String("user_id", userID),
		slog.String("channel_id", channelID))
	return BeginResult{Ticket: ticket}, nil
}

// Ticket returns the user's onboarding session, if any.
func (s *Service) Ticket(ctx context.Context, userID string) (*models.Ticket, error) {
	return s.tickets.Get(ctx, userID)
}

// Advance moves the tutorial forward by exactly one step.
func (s *Service) Advance(ctx context.Context, userID, username string) (AdvanceResult, error) {
	ticket, err := s.tickets.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrTicketNotFound) {
			return AdvanceResult{Rejection: RejectNoTicket}, nil
		}
		return AdvanceResult{}, err
	}
	if ticket.Archive {
		return AdvanceResult{Rejection: RejectArchived, Step: ticket.TutorielEtape}, nil
	}
	if ticket.TutorielEtape >= models.TicketLastStep {
		return AdvanceResult{Rejection: RejectCompleted, Step: ticket.TutorielEtape, Completed: true}, nil
	}

	ticket.TutorielEtape++
	result := AdvanceResult{Step: ticket.TutorielEtape}

	payBonus := false
	switch ticket.TutorielEtape {
	case 3:
		granted, err := s.grantStarter(ctx, userID, username, ticket)
		if err != nil {
			return AdvanceResult{}, err
		}
		if granted != nil {
			result.GrantedArme = granted
			result.GrantedSable = catalog.TutorialSable
		}
	case models.TicketLastStep:
		if !ticket.TutorielComplete {
			ticket.TutorielComplete = true
			payBonus = true
		}
		result.Completed = true
	}

	// Completion is persisted before the bonus is paid, so a retried
	// advance after a failed ticket save can never pay twice.
	if err := s.tickets.Save(ctx, ticket); err != nil {
		return AdvanceResult{}, err
	}

	if payBonus {
		if _, err := s.economy.GrantSable(ctx, userID, catalog.TutorialSable*2); err != nil {
			return AdvanceResult{}, err
		}
		result.GrantedSable = catalog.TutorialSable * 2
	}
	return result, nil
}

// Archive closes the adventure for good.
func (s *Service) Archive(ctx context.Context, userID string) (*models.Ticket, error) {
	ticket, err := s.tickets.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !ticket.Archive {
		ticket.Archive = true
		if err := s.tickets.Save(ctx, ticket); err != nil {
			return nil, err
		}
		slog.Info("Adventure archived",
			slog.String("user_id", userID),
			slog.Int("final_step", ticket.TutorielEtape))
	}
	return ticket, nil
}

// grantStarter equips the free tier-1 weapon plus the tutorial sable bonus
// on first entry into step 3, for a profile that has a class and no weapon
// yet. Returns nil when nothing was granted.
func (s *Service) grantStarter(ctx context.Context, userID, username string, ticket *models.Ticket) (*catalog.Item, error) {
	if ticket.EquipmentGranted {
		return nil, nil
	}

	profile, err := s.economy.Profiles().GetOrCreate(ctx, userID, username)
	if err != nil {
		return nil, err
	}
	if profile.Classe == "" || profile.Arme != "" {
		return nil, nil
	}

	item, err := s.economy.GrantStarterEquipment(ctx, userID)
	if err != nil {
		return nil, err
	}
	ticket.EquipmentGranted = true
	return &item, nil
}
