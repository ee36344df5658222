package picker

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"github.com/arqon/groovebot/internal/features/shared"
	"github.com/arqon/groovebot/internal/music"
)

// CustomIDPrefix marks component custom IDs belonging to choice prompts.
const CustomIDPrefix = "music_choice"

// CancelAction is the custom-ID suffix of the cancel control.
const CancelAction = "cancel"

// Picker turns the one-shot prompt abstraction into Discord button rows.
type Picker struct {
	registry *music.PromptRegistry
	timeout  time.Duration
}

func New(registry *music.PromptRegistry, timeout time.Duration) *Picker {
	return &Picker{
		registry: registry,
		timeout:  timeout,
	}
}

// For binds a chooser to the interaction whose followups will carry the
// prompt UI.
func (p *Picker) For(s *discordgo.Session, i *discordgo.InteractionCreate) music.Chooser {
	return &interactionChooser{
		picker: p,
		s:      s,
		i:      i,
	}
}

type interactionChooser struct {
	picker *Picker
	s      *discordgo.Session
	i      *discordgo.InteractionCreate
}

func (c *interactionChooser) Choose(ctx context.Context, choices []music.Choice) (int, error) {
	prompt := music.NewPrompt(choices)
	c.picker.registry.Register(prompt)
	defer c.picker.registry.Remove(prompt.ID())

	if err := c.send(prompt); err != nil {
		return 0, fmt.Errorf("choice prompt failed: %w", err)
	}

	outcome := prompt.Await(ctx, c.picker.timeout)
	if outcome.Kind != music.OutcomeSelected {
		return 0, music.ErrCancelled
	}
	return outcome.Index, nil
}

func (c *interactionChooser) send(prompt *music.Prompt) error {
	choices := prompt.Choices()

	lines := make([]string, 0, len(choices))
	buttons := make([]discordgo.MessageComponent, 0, len(choices))
	for idx, choice := range choices {
		label := choice.Title
		if choice.Artist != "" {
			label = fmt.Sprintf("%s - %s", choice.Title, choice.Artist)
		}
		lines = append(lines, fmt.Sprintf("%d). %s", idx+1, label))

		buttons = append(buttons, discordgo.Button{
			Style:    discordgo.PrimaryButton,
			Label:    fmt.Sprintf("%d", idx+1),
			CustomID: MakeChoiceCustomID(prompt.ID(), idx),
		})
	}

	embed := &discordgo.MessageEmbed{
		Title:       "Results",
		Description: strings.Join(lines, "\n"),
		Color:       shared.AccentColor,
	}

	components := []discordgo.MessageComponent{
		discordgo.ActionsRow{Components: buttons},
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Style:    discordgo.DangerButton,
					Label:    "Cancel",
					CustomID: MakeCancelCustomID(prompt.ID()),
				},
			},
		},
	}

	_, err := c.s.FollowupMessageCreate(c.i.Interaction, true, &discordgo.WebhookParams{
		Embeds:     []*discordgo.MessageEmbed{embed},
		Components: components,
		Flags:      discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		log.Printf("choice prompt followup failed: %v", err)
	}
	return err
}

func MakeChoiceCustomID(promptID string, index int) string {
	return fmt.Sprintf("%s:%s:%d", CustomIDPrefix, promptID, index)
}

func MakeCancelCustomID(promptID string) string {
	return fmt.Sprintf("%s:%s:%s", CustomIDPrefix, promptID, CancelAction)
}

// ParseCustomID splits a choice custom ID into prompt ID and action. The
// action is either CancelAction or a zero-based index.
func ParseCustomID(customID string) (promptID, action string, ok bool) {
	if !strings.HasPrefix(customID, CustomIDPrefix+":") {
		return "", "", false
	}

	parts := strings.Split(customID, ":")
	if len(parts) != 3 {
		return "", "", false
	}
	return parts[1], parts[2], true
}
