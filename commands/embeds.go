package commands

import (
	"fmt"

	"kronos/clients"
	"kronos/config"
)

// Embed colors
const (
	colorRed    = 0xc90202
	colorYellow = 0xf5cc00
	colorGreen  = 0x308001
)

func errorEmbed() clients.Embed {
	return clients.Embed{
		Title: "Error",
		Description: fmt.Sprintf(
			"Something went wrong. If this keeps occurring,\nplease contact <@%s>.",
			config.AuthorID,
		),
		Color: colorRed,
	}
}
