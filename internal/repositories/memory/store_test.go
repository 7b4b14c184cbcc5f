package memory_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/transaction_processor/internal/apperrors"
	"github.com/SscSPs/transaction_processor/internal/core/domain"
	portsrepo "github.com/SscSPs/transaction_processor/internal/core/ports/repositories"
	"github.com/SscSPs/transaction_processor/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type StoreTestSuite struct {
	suite.Suite
	ctx   context.Context
	store *memory.Store
}

func (suite *StoreTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memory.NewStore()
}

func (suite *StoreTestSuite) seedAccount(balance string) *domain.Account {
	acc, err := domain.NewAccount(domain.NewAccountID(), "client-1", decimal.RequireFromString(balance), decimal.Zero, "BRL", time.Now().UTC())
	suite.Require().NoError(err)
	suite.Require().NoError(suite.store.SaveAccount(suite.ctx, *acc))
	return acc
}

func (suite *StoreTestSuite) TestFindAccount_NotFound() {
	_, err := suite.store.FindAccountByID(suite.ctx, "ACC-missing")
	suite.ErrorIs(err, apperrors.ErrAccountNotFound)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *StoreTestSuite) TestCommit_PersistsEntriesAndBalances() {
	seeded := suite.seedAccount("100")

	acc, err := suite.store.FindAccountByID(suite.ctx, seeded.AccountID)
	suite.Require().NoError(err)
	_, err = acc.Credit(decimal.NewFromInt(50), "C1", "BRL")
	suite.Require().NoError(err)

	suite.Require().NoError(suite.store.CommitAccounts(suite.ctx, acc))

	reloaded, err := suite.store.FindAccountByID(suite.ctx, seeded.AccountID)
	suite.Require().NoError(err)
	suite.True(reloaded.Balance.Equal(decimal.NewFromInt(150)))
	suite.True(reloaded.Version.Balance.Equal(decimal.NewFromInt(150)))
	suite.Empty(reloaded.PendingEntries())

	entry, err := suite.store.FindEntryByReference(suite.ctx, "C1")
	suite.Require().NoError(err)
	suite.Equal(domain.OperationCredit, entry.Operation)
}

func (suite *StoreTestSuite) TestCommit_StaleVersionConflicts() {
	seeded := suite.seedAccount("100")

	first, err := suite.store.FindAccountByID(suite.ctx, seeded.AccountID)
	suite.Require().NoError(err)
	second, err := suite.store.FindAccountByID(suite.ctx, seeded.AccountID)
	suite.Require().NoError(err)

	_, err = first.Debit(decimal.NewFromInt(10), "D1", "BRL")
	suite.Require().NoError(err)
	_, err = second.Debit(decimal.NewFromInt(20), "D2", "BRL")
	suite.Require().NoError(err)

	suite.Require().NoError(suite.store.CommitAccounts(suite.ctx, first))
	err = suite.store.CommitAccounts(suite.ctx, second)
	suite.ErrorIs(err, apperrors.ErrConcurrencyConflict)

	_, err = suite.store.FindEntryByReference(suite.ctx, "D2")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *StoreTestSuite) TestCommit_ReferenceAlreadyTaken() {
	a := suite.seedAccount("100")
	b := suite.seedAccount("100")

	accA, _ := suite.store.FindAccountByID(suite.ctx, a.AccountID)
	_, err := accA.Credit(decimal.NewFromInt(1), "SAME", "BRL")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.store.CommitAccounts(suite.ctx, accA))

	accB, _ := suite.store.FindAccountByID(suite.ctx, b.AccountID)
	_, err = accB.Credit(decimal.NewFromInt(1), "SAME", "BRL")
	suite.Require().NoError(err)
	suite.ErrorIs(suite.store.CommitAccounts(suite.ctx, accB), apperrors.ErrConcurrencyConflict)
}

func (suite *StoreTestSuite) TestTransferLegsShareReference() {
	a := suite.seedAccount("100")
	b := suite.seedAccount("0")

	src, _ := suite.store.FindAccountByID(suite.ctx, a.AccountID)
	dst, _ := suite.store.FindAccountByID(suite.ctx, b.AccountID)
	_, _, err := src.TransferTo(dst, decimal.NewFromInt(40), "T1", "BRL")
	suite.Require().NoError(err)
	suite.Require().NoError(suite.store.CommitAccounts(suite.ctx, src, dst))

	entry, err := suite.store.FindEntryByReference(suite.ctx, "T1")
	suite.Require().NoError(err)
	suite.Equal(a.AccountID, entry.AccountID)

	history, err := suite.store.FindAccountHistoryForReference(suite.ctx, b.AccountID, "T1")
	suite.Require().NoError(err)
	suite.Require().Len(history, 1)
	suite.True(history[0].Inbound)
}

func (suite *StoreTestSuite) TestListEntriesByAccount_Paginates() {
	seeded := suite.seedAccount("0")
	for _, ref := range []string{"C1", "C2", "C3"} {
		acc, err := suite.store.FindAccountByID(suite.ctx, seeded.AccountID)
		suite.Require().NoError(err)
		_, err = acc.Credit(decimal.NewFromInt(1), ref, "BRL")
		suite.Require().NoError(err)
		suite.Require().NoError(suite.store.CommitAccounts(suite.ctx, acc))
		time.Sleep(time.Millisecond)
	}

	page, err := suite.store.ListEntriesByAccount(suite.ctx, seeded.AccountID, 2, nil)
	suite.Require().NoError(err)
	suite.Require().Len(page, 2)
	suite.Equal("C3", page[0].ReferenceID)
	suite.Equal("C2", page[1].ReferenceID)

	cursor := &portsrepo.EntryCursor{Timestamp: page[1].Timestamp, EntryID: page[1].EntryID}
	rest, err := suite.store.ListEntriesByAccount(suite.ctx, seeded.AccountID, 2, cursor)
	suite.Require().NoError(err)
	suite.Require().Len(rest, 1)
	suite.Equal("C1", rest[0].ReferenceID)
}

func (suite *StoreTestSuite) TestCommit_StatusChangeInvalidatesStaleCopy() {
	seeded := suite.seedAccount("100")

	stale, err := suite.store.FindAccountByID(suite.ctx, seeded.AccountID)
	suite.Require().NoError(err)
	blocker, err := suite.store.FindAccountByID(suite.ctx, seeded.AccountID)
	suite.Require().NoError(err)

	suite.Require().NoError(blocker.Block())
	suite.Require().NoError(suite.store.CommitAccounts(suite.ctx, blocker))

	_, err = stale.Credit(decimal.NewFromInt(50), "C-STALE", "BRL")
	suite.Require().NoError(err)
	suite.ErrorIs(suite.store.CommitAccounts(suite.ctx, stale), apperrors.ErrConcurrencyConflict)

	reloaded, err := suite.store.FindAccountByID(suite.ctx, seeded.AccountID)
	suite.Require().NoError(err)
	suite.Equal(domain.StatusBlocked, reloaded.Status)
	suite.True(reloaded.Balance.Equal(decimal.NewFromInt(100)))
	_, err = suite.store.FindEntryByReference(suite.ctx, "C-STALE")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *StoreTestSuite) TestClientWithAccount() {
	client, err := domain.NewClient("client-7", time.Now())
	suite.Require().NoError(err)
	acc, err := domain.NewAccount(domain.NewAccountID(), client.ClientID, decimal.Zero, decimal.Zero, "", time.Now())
	suite.Require().NoError(err)
	client.AddAccount(acc.AccountID, time.Now())

	suite.Require().NoError(suite.store.SaveClientWithAccount(suite.ctx, *client, *acc))
	suite.ErrorIs(suite.store.SaveClientWithAccount(suite.ctx, *client, *acc), apperrors.ErrDuplicate)

	found, err := suite.store.FindClientByID(suite.ctx, "client-7")
	suite.Require().NoError(err)
	suite.Equal([]string{acc.AccountID}, found.AccountIDs)

	accounts, err := suite.store.FindAccountsByClientID(suite.ctx, "client-7")
	suite.Require().NoError(err)
	suite.Len(accounts, 1)
}

func TestStoreTestSuite(t *testing.T) {
	suite.Run(t, new(StoreTestSuite))
}
