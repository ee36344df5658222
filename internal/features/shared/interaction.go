package shared

import (
	"log"
	"unicode/utf8"

	"github.com/bwmarrin/discordgo"
)

var AccentColor = 0x4A90D9

func RespondEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	if s == nil || i == nil {
		return
	}

	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Content: content,
			Flags:   discordgo.MessageFlagsEphemeral,
		},
	})
	if err != nil {
		log.Printf("failed to respond: %v", err)
	}
}

func DeferEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate) error {
	if s == nil || i == nil {
		return nil
	}
	return s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
		},
	})
}

func FollowupEphemeral(s *discordgo.Session, i *discordgo.InteractionCreate, content string) {
	if s == nil || i == nil {
		return
	}

	content = truncateContent(content)

	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		log.Printf("followup failed: %v", err)
	}
}

func FollowupEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed) {
	if s == nil || i == nil {
		return
	}

	_, err := s.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Embeds: []*discordgo.MessageEmbed{embed},
		Flags:  discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		log.Printf("followup embed failed: %v", err)
	}
}

// truncateContent caps message content at Discord's 2000-character limit,
// cutting on a rune boundary so multibyte text is never split.
func truncateContent(content string) string {
	const maxContentLength = 2000
	if utf8.RuneCountInString(content) <= maxContentLength {
		return content
	}
	runes := []rune(content)
	return string(runes[:maxContentLength-1]) + "…"
}

func GetOptionString(options []*discordgo.ApplicationCommandInteractionDataOption, name string) string {
	for _, opt := range options {
		if opt.Name == name {
			return opt.StringValue()
		}
	}
	return ""
}

func GetOptionInt(options []*discordgo.ApplicationCommandInteractionDataOption, name string) int {
	for _, opt := range options {
		if opt.Name == name {
			return int(opt.IntValue())
		}
	}
	return 0
}

func GetInteractionUserID(i *discordgo.InteractionCreate) string {
	if i == nil {
		return ""
	}
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// FindUserVoiceChannel reports which voice channel the user currently
// occupies in the guild, or "" when they are in none.
func FindUserVoiceChannel(s *discordgo.Session, guildID, userID string) string {
	if s == nil || guildID == "" || userID == "" {
		return ""
	}

	var guild *discordgo.Guild
	if s.State != nil {
		if g, err := s.State.Guild(guildID); err == nil {
			guild = g
		}
	}
	if guild == nil {
		g, err := s.Guild(guildID)
		if err != nil {
			return ""
		}
		guild = g
	}

	for _, vs := range guild.VoiceStates {
		if vs.UserID == userID && vs.ChannelID != "" {
			return vs.ChannelID
		}
	}
	return ""
}
