package leadgen

import (
	"context"
	"sync"
	"time"

	"leadgen_go/models"
)

// Фейковые реализации портов для тестов пакета. Все фейки уважают
// отмену контекста, как и боевые реализации.

// fakeSource отдаёт посты из карты по ID площадки.
type fakeSource struct {
	mu    sync.Mutex
	posts map[string][]models.Post
	errs  map[string]error
	calls map[string]int
}

func (f *fakeSource) FetchRecent(ctx context.Context, dest models.Destination, limit int) ([]models.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls == nil {
		f.calls = make(map[string]int)
	}
	f.calls[dest.ID]++
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := f.errs[dest.ID]; err != nil {
		return nil, err
	}
	posts := f.posts[dest.ID]
	if len(posts) > limit {
		posts = posts[:limit]
	}
	return posts, nil
}

// publishedComment — запись об одной публикации фейкового публикатора.
type publishedComment struct {
	DestID string
	PostID string
	Text   string
}

type fakePublisher struct {
	err       error
	published []publishedComment
}

func (f *fakePublisher) PublishComment(ctx context.Context, dest models.Destination, parentPostID, text string) (PublishResult, error) {
	if err := ctx.Err(); err != nil {
		return PublishResult{}, err
	}
	if f.err != nil {
		return PublishResult{}, f.err
	}
	f.published = append(f.published, publishedComment{DestID: dest.ID, PostID: parentPostID, Text: text})
	return PublishResult{URL: "https://t.me/" + dest.ID + "/" + parentPostID}, nil
}

type fakeGenerator struct {
	text  string
	err   error
	calls int
}

func (f *fakeGenerator) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type fakeSender struct {
	ok   bool
	msgs []AlertMessage
}

func (f *fakeSender) Send(ctx context.Context, msg AlertMessage) bool {
	f.msgs = append(f.msgs, msg)
	return f.ok
}

type fakeActivityStore struct {
	activity *models.PostingActivity
	loadErr  error
	saveErr  error
	saved    *models.PostingActivity
}

func (f *fakeActivityStore) LoadDay(ctx context.Context, day time.Time) (*models.PostingActivity, error) {
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	if f.activity != nil {
		return f.activity, nil
	}
	return models.NewPostingActivity(day), nil
}

func (f *fakeActivityStore) SaveDay(ctx context.Context, activity *models.PostingActivity) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = activity
	return nil
}

type fakeLeadStore struct {
	err   error
	leads []*models.Lead
}

func (f *fakeLeadStore) SaveLead(ctx context.Context, lead *models.Lead) error {
	if f.err != nil {
		return f.err
	}
	f.leads = append(f.leads, lead)
	return nil
}

type fakeAlertLog struct {
	err   error
	kinds []string
}

func (f *fakeAlertLog) SaveAlert(ctx context.Context, kind, title, severity string) error {
	if f.err != nil {
		return f.err
	}
	f.kinds = append(f.kinds, kind)
	return nil
}

// instantWait заменяет реальные задержки в тестах.
func instantWait(ctx context.Context, d time.Duration) error {
	return ctx.Err()
}
