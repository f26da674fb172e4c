package handler

import (
	"github.com/gin-gonic/gin"

	accountingapp "github.com/ledgerline/backend/internal/application/accounting"
)

// AccountingHandler handles chart-of-accounts and journal endpoints
type AccountingHandler struct {
	BaseHandler
	accountingService *accountingapp.AccountingService
}

// NewAccountingHandler creates a new AccountingHandler
func NewAccountingHandler(accountingService *accountingapp.AccountingService) *AccountingHandler {
	return &AccountingHandler{accountingService: accountingService}
}

// CreateAccount adds a node to the chart of accounts
func (h *AccountingHandler) CreateAccount(c *gin.Context) {
	var req accountingapp.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	account, err := h.accountingService.CreateAccount(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, account)
}

// GetAccount retrieves an account with its rolled-up balance
func (h *AccountingHandler) GetAccount(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	account, err := h.accountingService.GetAccount(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// UpdateAccount renames an account
func (h *AccountingHandler) UpdateAccount(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	var req accountingapp.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	account, err := h.accountingService.UpdateAccount(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, account)
}

// DeleteAccount removes a leaf account
func (h *AccountingHandler) DeleteAccount(c *gin.Context) {
	id, ok := h.parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.accountingService.DeleteAccount(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.NoContent(c)
}

// ListAccounts retrieves the full chart of accounts in code order
func (h *AccountingHandler) ListAccounts(c *gin.Context) {
	accounts, err := h.accountingService.ListAccounts(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, accounts)
}

// PostJournalEntry posts a manual double-entry journal entry
func (h *AccountingHandler) PostJournalEntry(c *gin.Context) {
	var req accountingapp.PostJournalEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	entry, err := h.accountingService.PostJournalEntry(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, entry)
}

// ListJournalEntries retrieves journal entries, newest first
func (h *AccountingHandler) ListJournalEntries(c *gin.Context) {
	var filter accountingapp.JournalListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	entries, err := h.accountingService.ListJournalEntries(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, entries)
}
