package tutorial

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/marchanddesable/sablebot/sablebot/catalog"
	"github.com/marchanddesable/sablebot/sablebot/database"
	"github.com/marchanddesable/sablebot/sablebot/database/models"
	"github.com/marchanddesable/sablebot/sablebot/database/repositories"
	"github.com/marchanddesable/sablebot/sablebot/economy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *economy.Service) {
	t.Helper()
	dir := t.TempDir()
	profiles := repositories.NewProfileRepository(
		database.NewStore[models.Profile](filepath.Join(dir, "joueurs.json")))
	tickets := repositories.NewTicketRepository(
		database.NewStore[models.Ticket](filepath.Join(dir, "tickets.json")))
	eco := economy.NewService(profiles)
	return NewService(tickets, eco), eco
}

func TestBegin(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	result, err := s.Begin(ctx, "1", "chan-1")
	require.NoError(t, err)
	require.False(t, result.Rejection.Rejected())
	assert.Equal(t, models.TicketFirstStep, result.Ticket.TutorielEtape)

	// An open adventure blocks a second one.
	result, err = s.Begin(ctx, "1", "chan-2")
	require.NoError(t, err)
	assert.Equal(t, RejectActiveTicket, result.Rejection)
	assert.Equal(t, "chan-1", result.Ticket.ChannelID)

	// Archiving frees the user to start over.
	_, err = s.Archive(ctx, "1")
	require.NoError(t, err)
	result, err = s.Begin(ctx, "1", "chan-2")
	require.NoError(t, err)
	assert.False(t, result.Rejection.Rejected())
	assert.Equal(t, "chan-2", result.Ticket.ChannelID)
}

func TestAdvanceWithoutTicket(t *testing.T) {
	s, _ := newTestService(t)

	result, err := s.Advance(context.Background(), "1", "arthur")
	require.NoError(t, err)
	assert.Equal(t, RejectNoTicket, result.Rejection)
}

func TestAdvanceFullRun(t *testing.T) {
	s, eco := newTestService(t)
	ctx := context.Background()

	_, err := s.Begin(ctx, "1", "chan-1")
	require.NoError(t, err)

	// Step 1 -> 2.
	result, err := s.Advance(ctx, "1", "arthur")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Step)
	assert.Nil(t, result.GrantedArme)

	// The class is picked during step 2, before the next advance.
	selected, err := eco.SelectClass(ctx, "1", "arthur", catalog.ClassChevalier)
	require.NoError(t, err)
	require.False(t, selected.Rejection.Rejected())

	// Step 2 -> 3 hands out the starter weapon and the tutorial bonus.
	result, err = s.Advance(ctx, "1", "arthur")
	require.NoError(t, err)
	assert.Equal(t, 3, result.Step)
	require.NotNil(t, result.GrantedArme)
	assert.Equal(t, "Épée de bronze", result.GrantedArme.Name)
	assert.Equal(t, catalog.TutorialSable, result.GrantedSable)

	profile, err := eco.Profiles().Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Épée de bronze", profile.Arme)
	assert.Equal(t, catalog.StartingSable+catalog.TutorialSable, profile.Sable)

	// Steps 4 and 5 grant nothing.
	for want := 4; want <= 5; want++ {
		result, err = s.Advance(ctx, "1", "arthur")
		require.NoError(t, err)
		assert.Equal(t, want, result.Step)
		assert.Nil(t, result.GrantedArme)
		assert.Zero(t, result.GrantedSable)
	}

	// Step 6 completes and pays the completion bonus.
	result, err = s.Advance(ctx, "1", "arthur")
	require.NoError(t, err)
	assert.Equal(t, models.TicketLastStep, result.Step)
	assert.True(t, result.Completed)
	assert.Equal(t, catalog.TutorialSable*2, result.GrantedSable)

	profile, err = eco.Profiles().Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, catalog.StartingSable+catalog.TutorialSable*3, profile.Sable)

	// Past the end: rejected, no second bonus.
	result, err = s.Advance(ctx, "1", "arthur")
	require.NoError(t, err)
	assert.Equal(t, RejectCompleted, result.Rejection)

	after, err := eco.Profiles().Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, profile.Sable, after.Sable)
}

func TestStarterGrantHappensOnce(t *testing.T) {
	s, eco := newTestService(t)
	ctx := context.Background()

	_, err := s.Begin(ctx, "1", "chan-1")
	require.NoError(t, err)
	_, err = eco.SelectClass(ctx, "1", "arthur", catalog.ClassMage)
	require.NoError(t, err)

	// Run to completion, archive, start over: step 3 must not re-grant.
	for step := 2; step <= models.TicketLastStep; step++ {
		_, err = s.Advance(ctx, "1", "arthur")
		require.NoError(t, err)
	}
	_, err = s.Archive(ctx, "1")
	require.NoError(t, err)

	before, err := eco.Profiles().Get(ctx, "1")
	require.NoError(t, err)

	_, err = s.Begin(ctx, "1", "chan-2")
	require.NoError(t, err)
	result, err := s.Advance(ctx, "1", "arthur")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Step)
	result, err = s.Advance(ctx, "1", "arthur")
	require.NoError(t, err)
	assert.Equal(t, 3, result.Step)
	assert.Nil(t, result.GrantedArme)

	after, err := eco.Profiles().Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, before.Sable, after.Sable)
	assert.Equal(t, before.Arme, after.Arme)
}

// flakySaveTickets fails ticket saves on demand, leaving reads intact.
type flakySaveTickets struct {
	repositories.TicketRepository
	failSaves bool
}

func (f *flakySaveTickets) Save(ctx context.Context, ticket *models.Ticket) error {
	if f.failSaves {
		return errors.New("disk full")
	}
	return f.TicketRepository.Save(ctx, ticket)
}

func TestCompletionBonusNotPaidWhenTicketSaveFails(t *testing.T) {
	dir := t.TempDir()
	profiles := repositories.NewProfileRepository(
		database.NewStore[models.Profile](filepath.Join(dir, "joueurs.json")))
	tickets := &flakySaveTickets{TicketRepository: repositories.NewTicketRepository(
		database.NewStore[models.Ticket](filepath.Join(dir, "tickets.json")))}
	eco := economy.NewService(profiles)
	s := NewService(tickets, eco)
	ctx := context.Background()

	_, err := s.Begin(ctx, "1", "chan-1")
	require.NoError(t, err)
	_, err = eco.SelectClass(ctx, "1", "arthur", catalog.ClassChevalier)
	require.NoError(t, err)
	for step := 2; step < models.TicketLastStep; step++ {
		_, err = s.Advance(ctx, "1", "arthur")
		require.NoError(t, err)
	}

	before, err := eco.Profiles().Get(ctx, "1")
	require.NoError(t, err)

	// The advance into the final step fails to persist: no bonus paid.
	tickets.failSaves = true
	_, err = s.Advance(ctx, "1", "arthur")
	require.Error(t, err)

	unpaid, err := eco.Profiles().Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, before.Sable, unpaid.Sable)

	// The retry completes and pays the bonus exactly once.
	tickets.failSaves = false
	result, err := s.Advance(ctx, "1", "arthur")
	require.NoError(t, err)
	assert.True(t, result.Completed)
	assert.Equal(t, catalog.TutorialSable*2, result.GrantedSable)

	paid, err := eco.Profiles().Get(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, before.Sable+catalog.TutorialSable*2, paid.Sable)

	result, err = s.Advance(ctx, "1", "arthur")
	require.NoError(t, err)
	assert.Equal(t, RejectCompleted, result.Rejection)
}

func TestArchivedTicketIsTerminal(t *testing.T) {
	s, _ := newTestService(t)
	ctx := context.Background()

	_, err := s.Begin(ctx, "1", "chan-1")
	require.NoError(t, err)
	_, err = s.Archive(ctx, "1")
	require.NoError(t, err)

	result, err := s.Advance(ctx, "1", "arthur")
	require.NoError(t, err)
	assert.Equal(t, RejectArchived, result.Rejection)

	// Archiving again is a no-op, not an error.
	ticket, err := s.Archive(ctx, "1")
	require.NoError(t, err)
	assert.True(t, ticket.Archive)
}
