package listeners

import (
	"fmt"
	"strconv"

	"github.com/bwmarrin/discordgo"

	"github.com/arqon/groovebot/internal/features/picker"
	"github.com/arqon/groovebot/internal/features/shared"
	"github.com/arqon/groovebot/internal/music"
)

const staleInteractionNotice = "This interaction is no longer valid."

// HandleChoiceComponent routes a button activation into its pending prompt.
// Only the first qualifying activation settles a prompt; anything later is
// rejected without touching the recorded result.
func HandleChoiceComponent(s *discordgo.Session, i *discordgo.InteractionCreate, prompts *music.PromptRegistry) {
	if s == nil || i == nil || i.Type != discordgo.InteractionMessageComponent {
		return
	}

	promptID, action, ok := picker.ParseCustomID(i.MessageComponentData().CustomID)
	if !ok {
		shared.RespondEphemeral(s, i, staleInteractionNotice)
		return
	}

	prompt, ok := prompts.Get(promptID)
	if !ok {
		shared.RespondEphemeral(s, i, staleInteractionNotice)
		return
	}

	if action == picker.CancelAction {
		if !prompt.Cancel() {
			shared.RespondEphemeral(s, i, staleInteractionNotice)
			return
		}
		shared.RespondEphemeral(s, i, "Cancelling.")
		return
	}

	index, err := strconv.Atoi(action)
	if err != nil {
		shared.RespondEphemeral(s, i, staleInteractionNotice)
		return
	}

	if !prompt.Resolve(index) {
		shared.RespondEphemeral(s, i, staleInteractionNotice)
		return
	}

	shared.RespondEphemeral(s, i, fmt.Sprintf("You picked %d", index+1))
}
