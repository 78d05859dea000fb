package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/baharkarakas/ethscan-backend/internal/apperr"
	"github.com/baharkarakas/ethscan-backend/internal/etherscan"
	"github.com/baharkarakas/ethscan-backend/internal/ethutil"
	"github.com/baharkarakas/ethscan-backend/internal/metrics"
	"github.com/baharkarakas/ethscan-backend/internal/models"
	repo "github.com/baharkarakas/ethscan-backend/internal/repository"
)

const (
	cacheKeyPrefix  = "eth:account:"
	DefaultCacheTTL = time.Hour
)

// Cache is the shared key/value store holding formatted snapshots.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}

// Explorer is the block-explorer surface the service reads from.
type Explorer interface {
	Balance(ctx context.Context, address string) (string, error)
	BlockNumber(ctx context.Context) (string, error)
	GasPrice(ctx context.Context) (string, error)
	TxList(ctx context.Context, address string, q etherscan.TxListQuery) ([]etherscan.Tx, error)
}

type AccountService struct {
	cache    Cache
	explorer Explorer
	ledger   repo.Accounts
	ttl      time.Duration
	log      *slog.Logger
}

func NewAccountService(c Cache, e Explorer, l repo.Accounts, ttl time.Duration, log *slog.Logger) *AccountService {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	if log == nil {
		log = slog.Default()
	}
	return &AccountService{cache: c, explorer: e, ledger: l, ttl: ttl, log: log}
}

func CacheKey(normalizedAddress string) string { return cacheKeyPrefix + normalizedAddress }

// Lookup returns balance, head block and gas price for address. A cached
// snapshot is served as-is; otherwise the three values are fetched
// concurrently, cached, and the address is recorded in the ledger.
func (s *AccountService) Lookup(ctx context.Context, address string) (models.AccountView, error) {
	addr, err := ethutil.NormalizeAddress(address)
	if err != nil {
		metrics.AccountLookups.WithLabelValues("error").Inc()
		return models.AccountView{}, err
	}
	key := CacheKey(addr)

	if snap, ok, err := s.cached(ctx, key); err != nil {
		metrics.AccountLookups.WithLabelValues("error").Inc()
		return models.AccountView{}, err
	} else if ok {
		metrics.AccountLookups.WithLabelValues("hit").Inc()
		return models.AccountView{AccountSnapshot: snap, Cached: true}, nil
	}

	snap, err := s.fetch(ctx, addr)
	if err != nil {
		metrics.AccountLookups.WithLabelValues("error").Inc()
		return models.AccountView{}, err
	}

	b, err := json.Marshal(snap)
	if err != nil {
		return models.AccountView{}, err
	}
	if err := s.cache.Set(ctx, key, string(b), s.ttl); err != nil {
		metrics.AccountLookups.WithLabelValues("error").Inc()
		return models.AccountView{}, fmt.Errorf("cache set %s: %w", key, err)
	}
	s.log.Debug("cached account snapshot", "key", key, "ttl", s.ttl)

	created, err := s.ledger.InsertIfAbsent(ctx, addr, snap.Balance)
	if err != nil {
		metrics.AccountLookups.WithLabelValues("error").Inc()
		return models.AccountView{}, fmt.Errorf("ledger insert %s: %w", addr, err)
	}
	if created {
		s.log.Info("created account", "address", addr)
	}

	metrics.AccountLookups.WithLabelValues("miss").Inc()
	return models.AccountView{AccountSnapshot: snap, Cached: false}, nil
}

func (s *AccountService) cached(ctx context.Context, key string) (models.AccountSnapshot, bool, error) {
	raw, found, err := s.cache.Get(ctx, key)
	if err != nil {
		return models.AccountSnapshot{}, false, fmt.Errorf("cache get %s: %w", key, err)
	}
	if !found {
		return models.AccountSnapshot{}, false, nil
	}
	var snap models.AccountSnapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		s.log.Warn("discarding unreadable cache entry", "key", key, "err", err)
		return models.AccountSnapshot{}, false, nil
	}
	return snap, true, nil
}

// fetch joins the three upstream calls; the first failure cancels the rest.
func (s *AccountService) fetch(ctx context.Context, addr string) (models.AccountSnapshot, error) {
	var balanceWei, blockNumber, gasPriceWei string

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		balanceWei, err = s.explorer.Balance(gctx, addr)
		return err
	})
	g.Go(func() (err error) {
		blockNumber, err = s.explorer.BlockNumber(gctx)
		return err
	})
	g.Go(func() (err error) {
		gasPriceWei, err = s.explorer.GasPrice(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return models.AccountSnapshot{}, err
	}

	bal, err := ethutil.ParseWei(balanceWei)
	if err != nil {
		return models.AccountSnapshot{}, &apperr.UpstreamError{Action: "balance", Msg: "malformed result", Err: err}
	}
	gas, err := ethutil.ParseWei(gasPriceWei)
	if err != nil {
		return models.AccountSnapshot{}, &apperr.UpstreamError{Action: "eth_gasPrice", Msg: "malformed result", Err: err}
	}
	return models.AccountSnapshot{
		Balance:     ethutil.FormatEther(bal),
		BlockNumber: blockNumber,
		GasPrice:    ethutil.FormatGwei(gas),
	}, nil
}

// Transactions lists explorer transactions for address, newest first unless
// q.Sort is "asc".
func (s *AccountService) Transactions(ctx context.Context, address string, q etherscan.TxListQuery) ([]models.ExplorerTx, error) {
	addr, err := ethutil.NormalizeAddress(address)
	if err != nil {
		return nil, err
	}
	txs, err := s.explorer.TxList(ctx, addr, q)
	if err != nil {
		return nil, err
	}
	out := make([]models.ExplorerTx, 0, len(txs))
	for _, tx := range txs {
		et := models.ExplorerTx{Tx: tx}
		if v, err := ethutil.ParseWei(tx.Value); err == nil {
			et.ValueEth = ethutil.FormatEther(v)
		}
		out = append(out, et)
	}
	return out, nil
}

func (s *AccountService) LedgerEntry(ctx context.Context, address string) (models.Account, error) {
	addr, err := ethutil.NormalizeAddress(address)
	if err != nil {
		return models.Account{}, err
	}
	return s.ledger.GetByAddress(ctx, addr)
}

func (s *AccountService) Ledger(ctx context.Context, limit, offset int) ([]models.Account, error) {
	return s.ledger.List(ctx, limit, offset)
}
