package accounting

import "context"

// PostEntry moves both account balances for a journal entry. Accounts are
// row-locked in code order so concurrent postings touching the same pair
// cannot deadlock. Must run inside the transaction that inserts the entry.
func PostEntry(ctx context.Context, repo AccountRepository, entry *JournalEntry) error {
	first, second := entry.DebitAccountCode, entry.CreditAccountCode
	if second < first {
		first, second = second, first
	}

	accounts := make(map[string]*Account, 2)
	for _, code := range []string{first, second} {
		account, err := repo.FindByCodeForUpdate(ctx, code)
		if err != nil {
			return err
		}
		accounts[code] = account
	}

	accounts[entry.DebitAccountCode].ApplyDebit(entry.Amount)
	accounts[entry.CreditAccountCode].ApplyCredit(entry.Amount)

	for _, code := range []string{first, second} {
		if err := repo.Save(ctx, accounts[code]); err != nil {
			return err
		}
	}
	return nil
}
