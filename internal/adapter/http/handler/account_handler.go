package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/soyRex-codes/mybank/internal/adapter/http/dto"
	"github.com/soyRex-codes/mybank/internal/domain"
	"github.com/soyRex-codes/mybank/internal/infrastructure/metrics"
	"github.com/soyRex-codes/mybank/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	OpenAccount(ctx context.Context, input usecase.OpenAccountInput) (*domain.Account, error)
	GetAccount(ctx context.Context, id string) (*domain.Account, error)
	GetAccountByNumber(ctx context.Context, number string) (*domain.Account, error)
	ListAccountsByOwner(ctx context.Context, ownerID string, limit, offset int) ([]*domain.Account, error)
	Deposit(ctx context.Context, input usecase.MoneyOperationInput) (*domain.Transaction, error)
	Withdraw(ctx context.Context, input usecase.MoneyOperationInput) (*domain.Transaction, error)
	Freeze(ctx context.Context, accountID string) (*domain.Account, error)
	Unfreeze(ctx context.Context, accountID string) (*domain.Account, error)
	Close(ctx context.Context, accountID string) (*domain.Account, error)
}

// AccountHandler handles account-related HTTP requests.
type AccountHandler struct {
	accountUC AccountService
	metrics   *metrics.Metrics
}

func NewAccountHandler(accountUC AccountService, m *metrics.Metrics) *AccountHandler {
	return &AccountHandler{accountUC: accountUC, metrics: m}
}

// Open opens a new account.
func (h *AccountHandler) Open(w http.ResponseWriter, r *http.Request) {
	var req dto.OpenAccountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	account, err := h.accountUC.OpenAccount(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to open account", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.AccountsOpened.Inc()
	}
	writeJSON(w, http.StatusCreated, dto.AccountFromDomain(account))
}

// Get retrieves an account by id.
func (h *AccountHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	account, err := h.accountUC.GetAccount(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// GetByNumber retrieves an account by its account number.
func (h *AccountHandler) GetByNumber(w http.ResponseWriter, r *http.Request) {
	number := chi.URLParam(r, "number")
	if number == "" {
		writeError(w, http.StatusBadRequest, "missing account number", "")
		return
	}

	account, err := h.accountUC.GetAccountByNumber(r.Context(), number)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}

// List lists the accounts of an owner.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	ownerID := r.URL.Query().Get("owner_id")
	if ownerID == "" {
		writeError(w, http.StatusBadRequest, "missing owner_id", "")
		return
	}

	limit := parseIntQuery(r, "limit", 20)
	offset := parseIntQuery(r, "offset", 0)

	accounts, err := h.accountUC.ListAccountsByOwner(r.Context(), ownerID, limit, offset)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Accounts: dto.AccountsFromDomain(accounts),
		Total:    int64(len(accounts)),
	})
}

// Deposit credits the account.
func (h *AccountHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	h.moneyOperation(w, r, "deposit", h.accountUC.Deposit)
}

// Withdraw debits the account.
func (h *AccountHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	h.moneyOperation(w, r, "withdrawal", h.accountUC.Withdraw)
}

func (h *AccountHandler) moneyOperation(
	w http.ResponseWriter,
	r *http.Request,
	operation string,
	op func(ctx context.Context, input usecase.MoneyOperationInput) (*domain.Transaction, error),
) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	var req dto.MoneyOperationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	txn, err := op(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		if h.metrics != nil {
			h.metrics.AccountOperations.WithLabelValues(operation, "error").Inc()
		}
		writeError(w, mapDomainError(err), "failed to "+operation, err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.AccountOperations.WithLabelValues(operation, "ok").Inc()
	}
	writeJSON(w, http.StatusCreated, dto.TransactionFromDomain(txn))
}

// Freeze suspends the account.
func (h *AccountHandler) Freeze(w http.ResponseWriter, r *http.Request) {
	h.statusOperation(w, r, "freeze", h.accountUC.Freeze)
}

// Unfreeze reactivates the account.
func (h *AccountHandler) Unfreeze(w http.ResponseWriter, r *http.Request) {
	h.statusOperation(w, r, "unfreeze", h.accountUC.Unfreeze)
}

// Close closes the account.
func (h *AccountHandler) Close(w http.ResponseWriter, r *http.Request) {
	h.statusOperation(w, r, "close", h.accountUC.Close)
}

func (h *AccountHandler) statusOperation(
	w http.ResponseWriter,
	r *http.Request,
	operation string,
	op func(ctx context.Context, accountID string) (*domain.Account, error),
) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	account, err := op(r.Context(), id)
	if err != nil {
		if h.metrics != nil {
			h.metrics.AccountOperations.WithLabelValues(operation, "error").Inc()
		}
		writeError(w, mapDomainError(err), "failed to "+operation+" account", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.AccountOperations.WithLabelValues(operation, "ok").Inc()
	}
	writeJSON(w, http.StatusOK, dto.AccountFromDomain(account))
}
