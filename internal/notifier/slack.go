package notifier

import (
	"context"
	"errors"
	"fmt"

	"github.com/AdamBeresnev/billiards-league/internal/events"
	"github.com/slack-go/slack"
)

type Slack struct {
	api       *slack.Client
	channelID string
	baseURL   string
}

// NewSlack posts to channelID with a bot token. baseURL is the public address of
// the league site, used to link the game page.
func NewSlack(token, channelID, baseURL string) *Slack {
	return NewSlackWithAPI(slack.New(token), channelID, baseURL)
}

// NewSlackWithAPI uses a custom API client. Used for testing.
func NewSlackWithAPI(api *slack.Client, channelID, baseURL string) *Slack {
	return &Slack{api: api, channelID: channelID, baseURL: baseURL}
}

func (s *Slack) NotifyGameRecorded(ctx context.Context, game events.GameRecorded) error {
	if s.api == nil || s.channelID == "" {
		return errors.New("slack client or channel ID is not configured")
	}

	msg := FormatGameRecorded(game, s.baseURL)
	_, _, err := s.api.PostMessageContext(ctx, s.channelID, slack.MsgOptionBlocks(msg.Blocks.BlockSet...))
	if err != nil {
		return fmt.Errorf("failed to send slack message: %w", err)
	}
	return nil
}

// FormatGameRecorded builds the Block Kit message for a new result.
func FormatGameRecorded(game events.GameRecorded, baseURL string) slack.Message {
	blocks := make([]slack.Block, 0, 3)

	header := slack.NewTextBlockObject("plain_text", "🎱 New result", true, false)
	blocks = append(blocks, slack.NewHeaderBlock(header))

	// names and score are user input; plain text keeps them out of mrkdwn and mentions
	details := fmt.Sprintf("%s beat %s %s", game.Winner, game.Loser, game.Score)
	blocks = append(blocks, slack.NewSectionBlock(slack.NewTextBlockObject("plain_text", details, false, false), nil, nil))

	var footer []slack.MixedElement
	if game.Bonus > 0 {
		footer = append(footer, slack.NewTextBlockObject("plain_text", "Handicap bonus point earned", true, false))
	}
	if baseURL != "" {
		link := fmt.Sprintf("<%s/games/%d|View game>", baseURL, game.ID)
		footer = append(footer, slack.NewTextBlockObject("mrkdwn", link, false, false))
	}
	if len(footer) > 0 {
		blocks = append(blocks, slack.NewContextBlock("", footer...))
	}

	return slack.NewBlockMessage(blocks...)
}
