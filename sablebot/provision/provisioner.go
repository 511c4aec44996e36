package provision

import (
	"fmt"
	"log/slog"

	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/snowflake/v2"
	"github.com/marchanddesable/sablebot/sablebot/catalog"
	"github.com/marchanddesable/sablebot/sablebot/utils"
)

// Provisioner creates the guild-side furniture the game needs: one colored
// role per class and one private adventure channel per onboarding player.
// Every operation here is best effort; a failed Discord call is logged and
// never rolls back the game state that triggered it.
type Provisioner struct {
	client            bot.Client
	ticketsCategoryID snowflake.ID
}

func New(client bot.Client, ticketsCategoryID snowflake.ID) *Provisioner {
	return &Provisioner{
		client:            client,
		ticketsCategoryID: ticketsCategoryID,
	}
}

// RoleName is the guild role created for a class.
func RoleName(classe catalog.Class) string {
	if classe == "" {
		return ""
	}
	return "Rêveur " + utils.Capitalize(string(classe))
}

// EnsureClassRole finds or creates the class role and assigns it to the
// member. Existing class roles on the member are swapped out first so a
// player never wears two classes at once.
func (p *Provisioner) EnsureClassRole(guildID, userID snowflake.ID, classe catalog.Class) error {
	info, ok := catalog.Classes[classe]
	if !ok {
		return fmt.Errorf("unknown class %q", classe)
	}

	roles, err := p.client.Rest().GetRoles(guildID)
	if err != nil {
		return fmt.Errorf("failed to list roles: %w", err)
	}

	wanted := RoleName(classe)
	var roleID snowflake.ID
	classRoles := map[string]snowflake.ID{}
	for _, other := range catalog.ClassNames {
		classRoles[RoleName(other)] = 0
	}
	for _, role := range roles {
		if _, isClassRole := classRoles[role.Name]; isClassRole {
			classRoles[role.Name] = role.ID
		}
		if role.Name == wanted {
			roleID = role.ID
		}
	}

	if roleID == 0 {
		created, err := p.client.Rest().CreateRole(guildID, discord.RoleCreate{
			Name:  wanted,
			Color: info.RoleColor,
		})
		if err != nil {
			return fmt.Errorf("failed to create role %q: %w", wanted, err)
		}
		roleID = created.ID
		slog.Info("Created class role",
			slog.String("role", wanted),
			slog.String("guild_id", guildID.String()))
	}

	// Drop the other class roles before adding the new one.
	for name, id := range classRoles {
		if id == 0 || name == wanted {
			continue
		}
		if err := p.client.Rest().RemoveMemberRole(guildID, userID, id); err != nil {
			slog.Warn("Failed to remove previous class role",
				slog.String("role", name),
				slog.String("user_id", userID.String()),
				slog.Any("error", err))
		}
	}

	if err := p.client.Rest().AddMemberRole(guildID, userID, roleID); err != nil {
		return fmt.Errorf("failed to assign role %q: %w", wanted, err)
	}
	return nil
}

// RemoveClassRoles strips every class role from the member.
func (p *Provisioner) RemoveClassRoles(guildID, userID snowflake.ID) {
	roles, err := p.client.Rest().GetRoles(guildID)
	if err != nil {
		slog.Warn("Failed to list roles",
			slog.String("guild_id", guildID.String()),
			slog.Any("error", err))
		return
	}

	for _, role := range roles {
		for _, classe := range catalog.ClassNames {
			if role.Name != RoleName(classe) {
				continue
			}
			if err := p.client.Rest().RemoveMemberRole(guildID, userID, role.ID); err != nil {
				slog.Warn("Failed to remove class role",
					slog.String("role", role.Name),
					slog.String("user_id", userID.String()),
					slog.Any("error", err))
			}
		}
	}
}

// CreateAdventureChannel opens the private onboarding channel for a player,
// visible only to them (and the bot). The channel lands under the configured
// tickets category when one is set.
func (p *Provisioner) CreateAdventureChannel(guildID, userID snowflake.ID, username string) (snowflake.ID, error) {
	overwrites := []discord.PermissionOverwrite{
		discord.RolePermissionOverwrite{
			RoleID: guildID, // @everyone
			Deny:   discord.PermissionViewChannel,
		},
		discord.MemberPermissionOverwrite{
			UserID: userID,
			Allow:  discord.PermissionViewChannel | discord.PermissionSendMessages | discord.PermissionReadMessageHistory,
		},
		discord.MemberPermissionOverwrite{
			UserID: p.client.ApplicationID(),
			Allow:  discord.PermissionViewChannel | discord.PermissionSendMessages | discord.PermissionReadMessageHistory,
		},
	}

	channel, err := p.client.Rest().CreateGuildChannel(guildID, discord.GuildTextChannelCreate{
		Name:                 fmt.Sprintf("aventure-%s", username),
		Topic:                "Ton aventure au Royaume des Rêves",
		ParentID:             p.ticketsCategoryID,
		PermissionOverwrites: overwrites,
	})
	if err != nil {
		return 0, fmt.Errorf("failed to create adventure channel: %w", err)
	}

	slog.Info("Created adventure channel",
		slog.String("channel_id", channel.ID().String()),
		slog.String("user_id", userID.String()))
	return channel.ID(), nil
}
