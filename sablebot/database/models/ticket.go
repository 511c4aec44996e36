package models

import "time"

// Tutorial step bounds. Step 6 doubles as the completion marker.
const (
	TicketFirstStep = 1
	TicketLastStep  = 6
)

// Ticket tracks one user's onboarding session and private adventure channel.
// Archived is terminal: an archived ticket accepts no further transitions.
type Ticket struct {
	UserID       string    `json:"user_id"`
	ChannelID    string    `json:"channel_id"`
	CreationDate time.Time `json:"creation_date"`

	TutorielEtape    int  `json:"tutoriel_etape"`
	TutorielComplete bool `json:"tutoriel_complete"`

	// EquipmentGranted marks the one-time step 3 starter grant so re-entry
	// never re-grants.
	EquipmentGranted bool `json:"equipment_granted"`

	Archive bool `json:"archive"`
}

func NewTicket(userID, channelID string, now time.Time) *Ticket {
	return &Ticket{
		UserID:        userID,
		ChannelID:     channelID,
		CreationDate:  now,
		TutorielEtape: TicketFirstStep,
	}
}
