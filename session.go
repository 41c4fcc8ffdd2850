package draftflow

import (
	"context"
	"database/sql"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/petrijr/draftflow/internal/persistence"
	"github.com/petrijr/draftflow/pkg/autosave"
	"github.com/petrijr/draftflow/pkg/workflow"
)

// DefaultDraftKey is the autosave key used when SessionConfig.AutosaveKey is
// empty.
const DefaultDraftKey = "content_draft"

// SessionConfig configures a Session.
type SessionConfig struct {
	// AutosaveKey namespaces the draft record. Defaults to DefaultDraftKey.
	AutosaveKey string

	// AutosaveInterval is the debounce window. Zero means
	// autosave.DefaultInterval.
	AutosaveInterval time.Duration

	// AutosaveEnabled turns draft autosave on or off. nil means enabled.
	AutosaveEnabled *bool

	// Clock defaults to the system clock.
	Clock Clock

	// Observer receives events from both the machine and the autosave
	// engine. May be nil.
	Observer Observer
}

// Session wires a workflow Machine and a draft autosave Engine over one
// Store. Every state change the machine makes is tracked as a Draft.
//
// Typical usage:
//
//	sess, _ := draftflow.NewSQLiteSession(ctx, db, draftflow.SessionConfig{})
//	defer sess.Close()
//	if rec, ok := sess.RestoreDraft(ctx); ok {
//	    // ask the user, then:
//	    sess.ApplyDraft(ctx, rec)
//	}
type Session struct {
	Machine  *workflow.Machine
	Autosave *autosave.Engine[workflow.Draft]

	store       Store
	unsubscribe func()
}

// NewSession constructs a Session on store. The machine restores any recent
// stored workflow state; the draft record is only read by RestoreDraft.
func NewSession(ctx context.Context, store Store, cfg SessionConfig) (*Session, error) {
	clk := cfg.Clock
	if clk == nil {
		clk = SystemClock()
	}
	key := cfg.AutosaveKey
	if key == "" {
		key = DefaultDraftKey
	}

	m := workflow.NewMachineWithObserver(ctx, store, clk, cfg.Observer)

	s := &Session{Machine: m, store: store}
	eng, err := autosave.NewWithObserver(store, clk, autosave.Config[workflow.Draft]{
		Key:      key,
		Interval: cfg.AutosaveInterval,
		Enabled:  cfg.AutosaveEnabled,
		OnRestore: func(ctx context.Context, d workflow.Draft) {
			s.applyDraft(ctx, d)
		},
	}, cfg.Observer)
	if err != nil {
		return nil, err
	}
	s.Autosave = eng
	s.unsubscribe = m.Subscribe(func(st workflow.State) {
		eng.Track(st.Draft())
	})
	return s, nil
}

// NewInMemorySession returns a Session backed by a non-durable in-memory
// store.
func NewInMemorySession(ctx context.Context, cfg SessionConfig) (*Session, error) {
	return NewSession(ctx, persistence.NewInMemoryStore(), cfg)
}

// NewSQLiteSession returns a Session persisting into a SQLite database. The
// caller imports the driver, e.g. _ "modernc.org/sqlite".
func NewSQLiteSession(ctx context.Context, db *sql.DB, cfg SessionConfig) (*Session, error) {
	store, err := persistence.NewSQLiteStore(db)
	if err != nil {
		return nil, err
	}
	return NewSession(ctx, store, cfg)
}

// NewPostgresSession returns a Session persisting into PostgreSQL. The
// caller imports the driver, e.g. _ "github.com/jackc/pgx/v5/stdlib".
func NewPostgresSession(ctx context.Context, db *sql.DB, cfg SessionConfig) (*Session, error) {
	store, err := persistence.NewPostgresStore(db)
	if err != nil {
		return nil, err
	}
	return NewSession(ctx, store, cfg)
}

// NewRedisSession returns a Session persisting into Redis under prefix.
// An empty prefix uses the store default.
func NewRedisSession(ctx context.Context, client redis.UniversalClient, prefix string, cfg SessionConfig) (*Session, error) {
	return NewSession(ctx, persistence.NewRedisStore(client, prefix), cfg)
}

// NewMongoSession returns a Session persisting into MongoDB. Empty names use
// the store defaults.
func NewMongoSession(ctx context.Context, client *mongo.Client, dbName, collName string, cfg SessionConfig) (*Session, error) {
	return NewSession(ctx, persistence.NewMongoStore(client, dbName, collName), cfg)
}

// Store returns the store shared by the machine and the autosave engine.
func (s *Session) Store() Store { return s.store }

// RestoreDraft returns the saved draft record if one exists and is less
// than 24 hours old. Nothing is applied.
func (s *Session) RestoreDraft(ctx context.Context) (DraftRecord, bool) {
	return s.Autosave.RestoreData(ctx)
}

// ApplyDraft copies rec's fields into the machine, dispatching one action
// per field that differs from the current state.
func (s *Session) ApplyDraft(ctx context.Context, rec DraftRecord) State {
	return s.applyDraft(ctx, rec.Data)
}

func (s *Session) applyDraft(ctx context.Context, d Draft) State {
	m := s.Machine
	cur := m.State()
	if d.Keyword != cur.SelectedKeyword {
		m.SetKeyword(ctx, d.Keyword)
	}
	if d.Title != cur.SelectedTitle {
		m.SetTitle(ctx, d.Title)
	}
	if d.Content != cur.GeneratedContent {
		m.SetContent(ctx, d.Content)
	}
	if d.Settings != cur.Settings {
		m.UpdateSettings(ctx, SettingsPatch{
			Tone:     workflow.Setting(d.Settings.Tone),
			Length:   workflow.Setting(d.Settings.Length),
			Language: workflow.Setting(d.Settings.Language),
		})
	}
	return m.State()
}

// SaveDraft writes the current draft immediately.
func (s *Session) SaveDraft(ctx context.Context) {
	s.Autosave.Track(s.Machine.State().Draft())
	s.Autosave.SaveNow(ctx)
}

// Indicator returns the save-status display for the draft.
func (s *Session) Indicator(ctx context.Context) autosave.Indicator {
	return s.Autosave.Indicator(ctx)
}

// Close stops tracking machine changes and cancels any pending draft save.
// It does not flush.
func (s *Session) Close() {
	if s.unsubscribe != nil {
		s.unsubscribe()
	}
	s.Autosave.Close()
}
