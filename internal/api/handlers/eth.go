package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/ethscan-backend/internal/api/httpx"
	"github.com/baharkarakas/ethscan-backend/internal/api/validate"
	"github.com/baharkarakas/ethscan-backend/internal/etherscan"
	"github.com/baharkarakas/ethscan-backend/internal/services"
)

type EthHandler struct {
	Svc *services.AccountService
}

func NewEthHandler(svc *services.AccountService) *EthHandler {
	return &EthHandler{Svc: svc}
}

// Account serves GET /eth/account?address=0x...
func (h *EthHandler) Account(w http.ResponseWriter, r *http.Request) {
	view, err := h.Svc.Lookup(r.Context(), r.URL.Query().Get("address"))
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, view)
}

// Transactions serves GET /eth/transactions?address=0x...&page=&offset=&sort=&startblock=&endblock=
func (h *EthHandler) Transactions(w http.ResponseWriter, r *http.Request) {
	q := validate.NewQuery(r.URL.Query())
	txq := etherscan.TxListQuery{
		StartBlock: q.Uint64("startblock", 0),
		EndBlock:   q.Uint64("endblock", 0),
		Page:       q.Int("page", 1, 1, 10000),
		Offset:     q.Int("offset", 10, 1, 1000),
		Sort:       q.OneOf("sort", "desc", "asc", "desc"),
	}
	if err := q.Err(); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_query", err.Error(), q.Errs)
		return
	}

	txs, err := h.Svc.Transactions(r.Context(), r.URL.Query().Get("address"), txq)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, txs)
}

// Ledger serves GET /eth/accounts?limit=&offset=
func (h *EthHandler) Ledger(w http.ResponseWriter, r *http.Request) {
	q := validate.NewQuery(r.URL.Query())
	limit := q.Int("limit", 50, 1, 500)
	offset := q.Int("offset", 0, 0, 1_000_000)
	if err := q.Err(); err != nil {
		httpx.WriteError(w, http.StatusBadRequest, "invalid_query", err.Error(), q.Errs)
		return
	}

	out, err := h.Svc.Ledger(r.Context(), limit, offset)
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, out)
}

// LedgerEntry serves GET /eth/accounts/{address}
func (h *EthHandler) LedgerEntry(w http.ResponseWriter, r *http.Request) {
	a, err := h.Svc.LedgerEntry(r.Context(), chi.URLParam(r, "address"))
	if err != nil {
		httpx.WriteErr(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, a)
}
