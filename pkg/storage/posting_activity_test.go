package storage

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"strings"
	"testing"
	"time"

	"leadgen_go/models"
)

// dummyDriver предоставляет минимальную реализацию драйвера SQL
// для перехвата выполняемых запросов без реальной БД.
type dummyDriver struct{}

type dummyConn struct{}

type dummyResult struct{}

// executedQueries хранит все запросы Exec, чтобы проверять их содержимое
var executedQueries []string

func (d *dummyDriver) Open(name string) (driver.Conn, error) { return &dummyConn{}, nil }

func (c *dummyConn) Prepare(query string) (driver.Stmt, error) {
	return nil, errors.New("not implemented")
}
func (c *dummyConn) Close() error              { return nil }
func (c *dummyConn) Begin() (driver.Tx, error) { return nil, errors.New("not implemented") }

// ExecContext сохраняет текст запроса и всегда успешно завершается
func (c *dummyConn) ExecContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Result, error) {
	executedQueries = append(executedQueries, query)
	return dummyResult{}, nil
}

func (c *dummyConn) QueryContext(ctx context.Context, query string, args []driver.NamedValue) (driver.Rows, error) {
	return nil, errors.New("not implemented")
}

func (dummyResult) LastInsertId() (int64, error) { return 0, nil }
func (dummyResult) RowsAffected() (int64, error) { return 1, nil }

func init() {
	sql.Register("dummy", &dummyDriver{})
}

// TestSaveDayUpsert проверяет, что повторное сохранение счётчиков на ту
// же дату не вызывает ошибку и запрос содержит ON CONFLICT с обновлением.
func TestSaveDayUpsert(t *testing.T) {
	executedQueries = nil
	conn, err := sql.Open("dummy", "")
	if err != nil {
		t.Fatalf("не удалось открыть фейковую БД: %v", err)
	}
	db := NewActivityDB(conn)

	day := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	activity := models.NewPostingActivity(day)
	activity.MarkPosted("videomakers_hub", day.Add(10*time.Hour))

	if err := db.SaveDay(context.Background(), activity); err != nil {
		t.Fatalf("первое сохранение завершилось ошибкой: %v", err)
	}
	activity.MarkPosted("smm_daily", day.Add(11*time.Hour))
	if err := db.SaveDay(context.Background(), activity); err != nil {
		t.Fatalf("повторное сохранение завершилось ошибкой: %v", err)
	}

	if len(executedQueries) != 2 {
		t.Fatalf("ожидалось 2 запроса, получено %d", len(executedQueries))
	}
	for _, q := range executedQueries {
		if !strings.Contains(q, "ON CONFLICT (activity_date) DO UPDATE") {
			t.Fatalf("в запросе отсутствует ON CONFLICT (activity_date) DO UPDATE: %s", q)
		}
	}
}
