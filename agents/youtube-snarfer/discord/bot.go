package discord

import (
	"context"
	"fmt"

	"snarfer-stack/agents/youtube-snarfer/snarfer"

	"github.com/bwmarrin/discordgo"
	"github.com/rs/zerolog/log"
)

// MessageHandler is the part of the snarfer the bot drives.
type MessageHandler interface {
	HandleMessage(ctx context.Context, ch snarfer.Channel, text string, reply snarfer.ReplyFunc)
}

// messageSender is the subset of *discordgo.Session used to post replies.
type messageSender interface {
	ChannelMessageSendComplex(channelID string, data *discordgo.MessageSend, options ...discordgo.RequestOption) (*discordgo.Message, error)
}

// Bot connects the snarfer to a Discord session.
type Bot struct {
	session *discordgo.Session
	handler MessageHandler
	ctx     context.Context
}

func NewBot(token string, handler MessageHandler) (*Bot, error) {
	if token == "" {
		return nil, fmt.Errorf("bot token is empty")
	}

	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("failed to create Discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuildMessages |
		discordgo.IntentsDirectMessages |
		discordgo.IntentMessageContent

	return &Bot{
		session: session,
		handler: handler,
		ctx:     context.Background(),
	}, nil
}

// Open registers the message handler and connects to the gateway. ctx bounds
// every lookup started from a Discord message.
func (b *Bot) Open(ctx context.Context) error {
	b.ctx = ctx
	b.session.AddHandler(b.onMessageCreate)

	if err := b.session.Open(); err != nil {
		return fmt.Errorf("failed to open Discord session: %w", err)
	}

	if b.session.State != nil && b.session.State.User != nil {
		log.Info().Str("user", b.session.State.User.Username).Msg("Discord bot connected")
	}
	return nil
}

func (b *Bot) Close() error {
	return b.session.Close()
}

// discordgo runs each event handler on its own goroutine, so lookups never
// block the gateway read loop.
func (b *Bot) onMessageCreate(s *discordgo.Session, m *discordgo.MessageCreate) {
	selfID := ""
	if s.State != nil && s.State.User != nil {
		selfID = s.State.User.ID
	}
	b.handleMessage(b.ctx, s, selfID, m.Message)
}

func (b *Bot) handleMessage(ctx context.Context, sender messageSender, selfID string, msg *discordgo.Message) {
	if msg == nil || msg.Author == nil {
		return
	}
	// Stop bot from responding to itself or other bots
	if msg.Author.ID == selfID || msg.Author.Bot {
		return
	}

	ch := snarfer.Channel{
		ID:        msg.ChannelID,
		IsChannel: msg.GuildID != "",
	}

	b.handler.HandleMessage(ctx, ch, msg.Content, func(text string, addressUser bool) error {
		_, err := sender.ChannelMessageSendComplex(msg.ChannelID, replyMessage(msg, text, addressUser))
		return err
	})
}

// replyMessage builds the outgoing message. Mentions are never parsed from
// the text; addressUser turns it into a reply to the triggering message.
func replyMessage(msg *discordgo.Message, text string, addressUser bool) *discordgo.MessageSend {
	send := &discordgo.MessageSend{
		Content:         text,
		AllowedMentions: &discordgo.MessageAllowedMentions{},
	}
	if addressUser {
		send.Reference = msg.Reference()
		send.AllowedMentions.RepliedUser = true
	}
	return send
}
