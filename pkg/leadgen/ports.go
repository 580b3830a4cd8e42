package leadgen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"leadgen_go/models"
)

// PostSource отдаёт свежие посты площадки. Конкретная реализация —
// pkg/telegram, в тестах — фейк.
type PostSource interface {
	FetchRecent(ctx context.Context, dest models.Destination, limit int) ([]models.Post, error)
}

// PublishResult — итог публикации комментария.
type PublishResult struct {
	URL string
}

// CommentPublisher отправляет комментарий под указанный пост площадки.
type CommentPublisher interface {
	PublishComment(ctx context.Context, dest models.Destination, parentPostID string, text string) (PublishResult, error)
}

// GenerationRequest — вход генератора комментариев.
type GenerationRequest struct {
	Destination models.Destination
	PostTitle   string
	PostBody    string
	PainPoints  []string
	Mode        string // models.ResponsePromotional | models.ResponseExpertAdvice | models.ResponseBridge
	Prompt      string // для bridge-ответов: готовая заготовка вместо поста
}

// CommentGenerator порождает текст ответа. Любая ошибка (таймаут,
// исчерпание квоты) обрабатывается вызывающей стороной через
// детерминированный запасной текст.
type CommentGenerator interface {
	Generate(ctx context.Context, req GenerationRequest) (string, error)
}

// AlertSender доставляет уведомление оператору. Возвращает false вместо
// ошибки: алертинг не имеет права валить прогон.
type AlertSender interface {
	Send(ctx context.Context, msg AlertMessage) bool
}

// ActivityStore хранит дневные счётчики ответов.
type ActivityStore interface {
	LoadDay(ctx context.Context, day time.Time) (*models.PostingActivity, error)
	SaveDay(ctx context.Context, activity *models.PostingActivity) error
}

// LeadStore сохраняет записи о лидах.
type LeadStore interface {
	SaveLead(ctx context.Context, lead *models.Lead) error
}

// ThrottledError — сигнал ограничения частоты от площадки (FLOOD_WAIT,
// HTTP 429 и подобное). Отличим от прочих ошибок, потому что влияет на
// расчёт задержек.
type ThrottledError struct {
	Wait time.Duration
	Err  error
}

func (e *ThrottledError) Error() string {
	return fmt.Sprintf("throttled (wait %s): %v", e.Wait, e.Err)
}

func (e *ThrottledError) Unwrap() error { return e.Err }

// IsThrottled сообщает, является ли ошибка сигналом троттлинга.
func IsThrottled(err error) bool {
	var te *ThrottledError
	return errors.As(err, &te)
}
