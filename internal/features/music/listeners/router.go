package listeners

import (
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/arqon/groovebot/internal/features/picker"
	"github.com/arqon/groovebot/internal/music"
)

func RouteMusicComponent(s *discordgo.Session, i *discordgo.InteractionCreate, prompts *music.PromptRegistry) bool {
	if i.Type != discordgo.InteractionMessageComponent {
		return false
	}

	customID := i.MessageComponentData().CustomID
	if !strings.HasPrefix(customID, picker.CustomIDPrefix+":") {
		return false
	}

	HandleChoiceComponent(s, i, prompts)
	return true
}
