package commands

import (
	"github.com/disgoorg/disgo/discord"
	"github.com/marchanddesable/sablebot/sablebot/commands/admin"
)

var Commands = []discord.ApplicationCommandCreate{
	Sable,
	Profil,
	Classe,
	Boutique,
	Acheter,
	Classement,
	Daily,
	Prestige,
	Succes,
	Niveau,
	Stats,
	Aide,
}

func init() {
	Commands = append(Commands, admin.Commands...)
}
