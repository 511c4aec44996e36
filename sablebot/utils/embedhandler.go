package utils

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/handler"
	"github.com/marchanddesable/sablebot/sablebot/config"
)

// ResponseHandler centralizes the embed responses every command shares so
// rejections and failures look the same everywhere.
type ResponseHandler struct{}

var EH = &ResponseHandler{}

// CreateErrorEmbed answers a command with a red error embed. Used both for
// rule rejections (with a specific message) and generic failures.
func (h *ResponseHandler) CreateErrorEmbed(e *handler.CommandEvent, message string) error {
	return e.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Title:       "❌ Erreur",
			Description: message,
			Color:       config.ErrorColor,
		}},
		Flags: discord.MessageFlagEphemeral,
	})
}

// CreateSuccessEmbed answers a command with a green embed.
func (h *ResponseHandler) CreateSuccessEmbed(e *handler.CommandEvent, title, message string) error {
	return e.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Title:       title,
			Description: message,
			Color:       config.SuccessColor,
		}},
	})
}

// CreateComponentError answers a button click with an ephemeral error.
func (h *ResponseHandler) CreateComponentError(e *handler.ComponentEvent, message string) error {
	return e.CreateMessage(discord.MessageCreate{
		Embeds: []discord.Embed{{
			Title:       "❌ Erreur",
			Description: message,
			Color:       config.ErrorColor,
		}},
		Flags: discord.MessageFlagEphemeral,
	})
}
