package telegram

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"strconv"
	"strings"
	"time"

	"leadgen_go/models"
	"leadgen_go/pkg/leadgen"

	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"
)

// ChannelSource реализует порты PostSource и CommentPublisher поверх
// каналов Telegram с обсуждениями. Клиент создаётся на каждый вызов и
// переиспользует сессию из БД, поэтому повторная авторизация не нужна.
type ChannelSource struct {
	Account models.Account
	DB      *sql.DB
	Rng     *rand.Rand
}

// NewChannelSource собирает источник для указанной учётной записи.
func NewChannelSource(account models.Account, db *sql.DB, rng *rand.Rand) *ChannelSource {
	return &ChannelSource{Account: account, DB: db, Rng: rng}
}

var _ leadgen.PostSource = (*ChannelSource)(nil)
var _ leadgen.CommentPublisher = (*ChannelSource)(nil)

// FetchRecent возвращает свежие посты канала площадки.
func (s *ChannelSource) FetchRecent(ctx context.Context, dest models.Destination, limit int) ([]models.Post, error) {
	client, err := accountInitialization(s.Account, s.DB)
	if err != nil {
		return nil, err
	}

	var posts []models.Post
	err = client.Run(ctx, func(ctx context.Context) error {
		api := tg.NewClient(client)

		channel, err := resolveChannel(ctx, api, dest.ID)
		if err != nil {
			return err
		}

		msgs, err := channelPosts(ctx, api, channel, limit)
		if err != nil {
			return fmt.Errorf("не удалось получить посты канала: %w", err)
		}

		for _, m := range msgs {
			posts = append(posts, postFromMessage(dest.ID, m))
		}
		return nil
	})
	if err != nil {
		return nil, classifyThrottle(err)
	}
	return posts, nil
}

// PublishComment отправляет комментарий в чат обсуждения под указанным
// постом канала. Возвращает ссылку на отправленный ответ.
func (s *ChannelSource) PublishComment(ctx context.Context, dest models.Destination, parentPostID, text string) (leadgen.PublishResult, error) {
	var result leadgen.PublishResult

	msgID, err := strconv.Atoi(parentPostID)
	if err != nil {
		return result, fmt.Errorf("некорректный ID поста %q: %w", parentPostID, err)
	}

	client, err := accountInitialization(s.Account, s.DB)
	if err != nil {
		return result, err
	}

	err = client.Run(ctx, func(ctx context.Context) error {
		api := tg.NewClient(client)

		channel, err := resolveChannel(ctx, api, dest.ID)
		if err != nil {
			return err
		}

		disc, err := postDiscussion(ctx, api, channel, msgID)
		if err != nil {
			return err
		}

		// Вступление в чат обсуждения обязательно для записи; повторное
		// вступление безвредно.
		if errJoin := joinChannel(ctx, api, disc.Chat); errJoin != nil {
			log.Printf("[PUBLISHER] не удалось вступить в чат обсуждения %s: %v", dest.ID, errJoin)
		}

		updates, err := api.MessagesSendMessage(ctx, &tg.MessagesSendMessageRequest{
			Peer: &tg.InputPeerChannel{
				ChannelID:  disc.Chat.ID,
				AccessHash: disc.Chat.AccessHash,
			},
			ReplyTo:  &tg.InputReplyToMessage{ReplyToMsgID: disc.PostMessage.ID},
			Message:  text,
			RandomID: s.Rng.Int63(),
		})
		if err != nil {
			return fmt.Errorf("не удалось отправить комментарий: %w", err)
		}

		result.URL = commentURL(dest.ID, msgID, sentMessageID(updates))
		return nil
	})
	if err != nil {
		return result, classifyThrottle(err)
	}
	return result, nil
}

// postFromMessage переводит сообщение канала во внутреннюю модель поста.
// Первая строка текста считается заголовком, остальное — телом.
func postFromMessage(destID string, m *tg.Message) models.Post {
	title := m.Message
	body := ""
	if idx := strings.IndexByte(m.Message, '\n'); idx >= 0 {
		title = strings.TrimSpace(m.Message[:idx])
		body = strings.TrimSpace(m.Message[idx+1:])
	}

	author := ""
	if from, ok := m.FromID.(*tg.PeerUser); ok {
		author = strconv.FormatInt(from.UserID, 10)
	}

	comments := 0
	if replies, ok := m.GetReplies(); ok {
		comments = replies.Replies
	}

	return models.Post{
		ID:            strconv.Itoa(m.ID),
		DestinationID: destID,
		Title:         title,
		Body:          body,
		Author:        author,
		CreatedAt:     timeFromUnix(m.Date),
		CommentCount:  comments,
	}
}

// sentMessageID извлекает ID отправленного сообщения из ответа API.
// Ноль — допустимый результат: ссылка тогда ведёт на всё обсуждение.
func sentMessageID(updates tg.UpdatesClass) int {
	u, ok := updates.(*tg.Updates)
	if !ok {
		return 0
	}
	for _, upd := range u.Updates {
		switch v := upd.(type) {
		case *tg.UpdateMessageID:
			return v.ID
		case *tg.UpdateNewChannelMessage:
			if m, ok := v.Message.(*tg.Message); ok {
				return m.ID
			}
		}
	}
	return 0
}

func timeFromUnix(sec int) time.Time { return time.Unix(int64(sec), 0) }

// commentURL строит публичную ссылку на комментарий.
func commentURL(username string, postID, commentID int) string {
	if commentID == 0 {
		return fmt.Sprintf("https://t.me/%s/%d", username, postID)
	}
	return fmt.Sprintf("https://t.me/%s/%d?comment=%d", username, postID, commentID)
}

// classifyThrottle переводит FLOOD_WAIT в сигнал троттлинга, понятный
// монитору частоты запросов.
func classifyThrottle(err error) error {
	if err == nil {
		return nil
	}
	if wait, ok := tgerr.AsFloodWait(err); ok {
		return &leadgen.ThrottledError{Wait: wait, Err: err}
	}
	return err
}
