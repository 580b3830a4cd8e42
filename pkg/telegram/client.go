package telegram

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"sort"

	"leadgen_go/models"

	"golang.org/x/net/proxy"

	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/dcs"
	"github.com/gotd/td/tg"
)

// accountInitialization создаёт клиент Telegram с хранением сессии в БД
// и опциональным SOCKS5-прокси.
func accountInitialization(account models.Account, db *sql.DB) (*telegram.Client, error) {
	var storage session.Storage = &session.StorageMemory{}
	if db != nil && account.ID > 0 {
		storage = &DBSessionStorage{DB: db, AccountID: account.ID}
	}

	opts := telegram.Options{SessionStorage: storage}
	if p := account.Proxy; p != nil {
		addr := fmt.Sprintf("%s:%d", p.IP, p.Port)
		var auth *proxy.Auth
		if p.Login != "" || p.Password != "" {
			auth = &proxy.Auth{User: p.Login, Password: p.Password}
		}
		d, err := proxy.SOCKS5("tcp", addr, auth, proxy.Direct)
		if err != nil {
			return nil, fmt.Errorf("proxy dialer: %w", err)
		}
		dc, ok := d.(proxy.ContextDialer)
		if !ok {
			return nil, fmt.Errorf("proxy dialer missing context")
		}
		opts.Resolver = dcs.Plain(dcs.PlainOptions{Dial: dc.DialContext})
		log.Printf("[PROXY] %s via %s", account.Phone, addr)
	}
	return telegram.NewClient(account.ApiID, account.ApiHash, opts), nil
}

// resolveChannel находит вещательный канал по username.
func resolveChannel(ctx context.Context, api *tg.Client, username string) (*tg.Channel, error) {
	resolved, err := api.ContactsResolveUsername(ctx, &tg.ContactsResolveUsernameRequest{Username: username})
	if err != nil {
		return nil, fmt.Errorf("не удалось распознать канал %s: %w", username, err)
	}
	for _, peer := range resolved.GetChats() {
		if ch, ok := peer.(*tg.Channel); ok {
			// Мегагруппы (чаты обсуждений) пропускаем, нужен сам канал.
			if ch.Megagroup {
				continue
			}
			if ch.Broadcast {
				return ch, nil
			}
		}
	}
	return nil, fmt.Errorf("broadcast channel not found: %s", username)
}

// joinChannel подписывает учётную запись на канал или чат обсуждения.
func joinChannel(ctx context.Context, api *tg.Client, channel *tg.Channel) error {
	_, err := api.ChannelsJoinChannel(ctx, &tg.InputChannel{
		ChannelID:  channel.ID,
		AccessHash: channel.AccessHash,
	})
	return err
}

// channelPosts возвращает последние сообщения канала, новые первыми.
func channelPosts(ctx context.Context, api *tg.Client, channel *tg.Channel, limit int) ([]*tg.Message, error) {
	history, err := api.MessagesGetHistory(ctx, &tg.MessagesGetHistoryRequest{
		Peer: &tg.InputPeerChannel{
			ChannelID:  channel.ID,
			AccessHash: channel.AccessHash,
		},
		Limit: limit,
	})
	if err != nil {
		return nil, err
	}

	messages, ok := history.(*tg.MessagesChannelMessages)
	if !ok {
		return nil, fmt.Errorf("unexpected messages type")
	}

	var valid []*tg.Message
	for _, msg := range messages.Messages {
		if m, ok := msg.(*tg.Message); ok {
			valid = append(valid, m)
		}
	}

	sort.Slice(valid, func(i, j int) bool {
		return valid[i].ID > valid[j].ID
	})
	return valid, nil
}

// discussion — чат обсуждения и корневое сообщение для поста канала.
type discussion struct {
	Chat        *tg.Channel
	PostMessage *tg.Message
}

// postDiscussion получает обсуждение для указанного поста канала.
func postDiscussion(ctx context.Context, api *tg.Client, channel *tg.Channel, msgID int) (*discussion, error) {
	discussMsg, err := api.MessagesGetDiscussionMessage(ctx, &tg.MessagesGetDiscussionMessageRequest{
		Peer: &tg.InputPeerChannel{
			ChannelID:  channel.ID,
			AccessHash: channel.AccessHash,
		},
		MsgID: msgID,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get discussion: %w", err)
	}

	// Чат обсуждения — канал из ответа, отличный от исходного.
	var linkedChat *tg.Channel
	for _, raw := range discussMsg.GetChats() {
		if ch, ok := raw.(*tg.Channel); ok && ch.ID != channel.ID {
			linkedChat = ch
			break
		}
	}
	if linkedChat == nil {
		return nil, fmt.Errorf("discussion chat not found")
	}

	// Корневое сообщение обсуждения — сообщение без ReplyTo в связанном чате.
	var postMsg *tg.Message
	for _, raw := range discussMsg.GetMessages() {
		m, ok := raw.(*tg.Message)
		if !ok {
			continue
		}
		peer, ok := m.PeerID.(*tg.PeerChannel)
		if !ok || peer.ChannelID != linkedChat.ID {
			continue
		}
		if m.ReplyTo == nil {
			postMsg = m
			break
		}
	}
	if postMsg == nil {
		return nil, fmt.Errorf("discussion post message not found")
	}

	return &discussion{Chat: linkedChat, PostMessage: postMsg}, nil
}
