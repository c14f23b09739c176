package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/finkeeper/internal/client/client"
	"github.com/dmitrijs2005/finkeeper/internal/client/config"
	"github.com/dmitrijs2005/finkeeper/internal/client/services"
	"github.com/dmitrijs2005/finkeeper/internal/client/store"
	"github.com/dmitrijs2005/finkeeper/internal/filex"
	"github.com/dmitrijs2005/finkeeper/internal/logging"
)

type App struct {
	config *config.Config
	log    logging.Logger
	db     *sql.DB

	store    *store.Store
	auth     *services.AuthService
	expenses *services.ExpenseService
	budget   *services.BudgetService
	summary  *services.SummaryService
	syncer   *services.SyncService

	reader *bufio.Reader
	out    io.Writer

	online       atomic.Bool
	expenseCount atomic.Int64
	unsubscribe  func()

	clock func() time.Time

	closeOnce sync.Once
}

// NewApp opens the local database, seeds it on first run and wires the
// services. The returned App owns the database; call Close when done.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	if cfg.DatabasePath != ":memory:" && !strings.HasPrefix(cfg.DatabasePath, "file:") {
		if _, err := filex.EnsureParentDir(cfg.DatabasePath); err != nil {
			return nil, fmt.Errorf("init database: %w", err)
		}
	}

	db, err := store.OpenDB(ctx, cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}

	apiClient, err := client.NewHTTPClient(cfg.ServerBaseURL, &http.Client{Timeout: cfg.RequestTimeout})
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	st := store.New(db, log)
	if _, err := st.Seed(ctx); err != nil {
		log.Error(ctx, "seeding failed", "error", err)
	}

	a := newApp(cfg, log, st, apiClient, in, out)
	a.db = db
	return a, nil
}

func newApp(cfg *config.Config, log logging.Logger, st *store.Store, c client.Client, in io.Reader, out io.Writer) *App {
	budget := services.NewBudgetService(st.Settings())
	a := &App{
		config:   cfg,
		log:      log,
		store:    st,
		auth:     services.NewAuthService(c, st, log),
		expenses: services.NewExpenseService(st, log),
		budget:   budget,
		summary:  services.NewSummaryService(st, budget),
		syncer:   services.NewSyncService(c, st, log),
		reader:   bufio.NewReader(in),
		out:      out,
		clock:    time.Now,
	}

	a.refreshCount(context.Background())
	a.unsubscribe = st.Subscribe(func(changed []store.Kind) {
		for _, k := range changed {
			if k == store.KindExpense {
				a.refreshCount(context.Background())
			}
		}
	})
	return a
}

func (a *App) refreshCount(ctx context.Context) {
	a.expenseCount.Store(int64(len(a.store.Expenses(ctx))))
}

func (a *App) isLoggedIn() bool {
	return a.auth.IsLoggedIn()
}

func (a *App) status() string {
	s := a.auth.Session()
	if s.Mode == services.ModeNone {
		return ""
	}
	conn := "offline"
	if a.online.Load() {
		conn = "online"
	}
	return fmt.Sprintf("(%s, %s, %d expenses) ", s.Username, conn, a.expenseCount.Load())
}

// Run starts the connectivity watcher and the REPL. It returns when the user
// exits, input ends, or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.StartOnlineStatusWatcher(ctx, a.config.OnlineCheckInterval)

	fmt.Fprintln(a.out, "Welcome to finkeeper (type 'help' for commands)")
	runREPL(ctx, a, a.status, a.reader, a.out)
}

// StartOnlineStatusWatcher pings the server every interval and records
// whether it is reachable.
func (a *App) StartOnlineStatusWatcher(ctx context.Context, interval time.Duration) {
	a.checkOnline(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.checkOnline(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (a *App) checkOnline(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	online := a.auth.Ping(pctx) == nil
	if a.online.Swap(online) != online {
		a.log.Info(ctx, "connectivity changed", "online", online)
	}
}

// Close releases the subscription and the database.
func (a *App) Close() error {
	var err error
	a.closeOnce.Do(func() {
		if a.unsubscribe != nil {
			a.unsubscribe()
		}
		if a.db != nil {
			err = a.db.Close()
		}
	})
	return err
}
