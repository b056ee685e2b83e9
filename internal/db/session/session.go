package session

import (
	"context"
	"errors"
	"time"

	e "blog/internal/core/domain/errors"
	"blog/internal/core/domain/logging"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

// PgxStore keeps scs session data in the "session" table.
// It implements scs.Store and scs.CtxStore.
type PgxStore struct {
	pool        *pgxpool.Pool
	log         logging.Logger
	stopCleanup chan struct{}
	done        chan struct{}
}

// NewPgxStore starts a goroutine deleting expired sessions every cleanupInterval.
// A zero interval disables the cleanup.
func NewPgxStore(pool *pgxpool.Pool, log logging.Logger, cleanupInterval time.Duration) *PgxStore {
	if pool == nil {
		panic(e.NewNilArgumentError("pool"))
	}
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	s := &PgxStore{pool: pool, log: log}
	if cleanupInterval > 0 {
		s.stopCleanup = make(chan struct{})
		s.done = make(chan struct{})
		go s.startCleanup(cleanupInterval)
	}
	return s
}

func (s *PgxStore) FindCtx(ctx context.Context, token string) (b []byte, found bool, err error) {
	err = s.pool.QueryRow(
		ctx,
		`SELECT data FROM session WHERE token = $1 AND expiry > now()`,
		token,
	).Scan(&b)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return b, true, nil
}

func (s *PgxStore) CommitCtx(ctx context.Context, token string, b []byte, expiry time.Time) error {
	_, err := s.pool.Exec(
		ctx,
		`INSERT INTO session (token, data, expiry) VALUES ($1, $2, $3)
		ON CONFLICT (token) DO UPDATE SET data = EXCLUDED.data, expiry = EXCLUDED.expiry`,
		token,
		b,
		expiry,
	)
	return err
}

func (s *PgxStore) DeleteCtx(ctx context.Context, token string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM session WHERE token = $1`, token)
	return err
}

func (s *PgxStore) Find(token string) ([]byte, bool, error) {
	return s.FindCtx(context.Background(), token)
}

func (s *PgxStore) Commit(token string, b []byte, expiry time.Time) error {
	return s.CommitCtx(context.Background(), token, b, expiry)
}

func (s *PgxStore) Delete(token string) error {
	return s.DeleteCtx(context.Background(), token)
}

// DeleteExpired removes sessions past their expiry and returns how many were removed.
func (s *PgxStore) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := s.pool.Exec(ctx, `DELETE FROM session WHERE expiry < now()`)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// StopCleanup stops the background cleanup and waits for it to exit.
func (s *PgxStore) StopCleanup() {
	if s.stopCleanup == nil {
		return
	}
	close(s.stopCleanup)
	<-s.done
	s.stopCleanup = nil
}

func (s *PgxStore) startCleanup(interval time.Duration) {
	defer close(s.done)
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			ctx := context.Background()
			deleted, err := s.DeleteExpired(ctx)
			if err != nil {
				s.log.Error(ctx, "Could not delete expired sessions.", logging.Entry("err", err))
				continue
			}
			if deleted > 0 {
				s.log.Info(ctx, "Expired sessions deleted.", logging.Entry("count", deleted))
			}
		case <-s.stopCleanup:
			return
		}
	}
}
