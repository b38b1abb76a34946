package domain

import "github.com/shopspring/decimal"

// ApplyEntry returns the account with the entry's monetary effect applied.
// A credit adds the amount; a debit subtracts it and fails with
// ErrInsufficientBalance if the result would be negative, leaving the
// returned account unchanged. The caller is responsible for persisting the
// result; nothing here touches a store.
func ApplyEntry(account Account, kind EntryKind, amount decimal.Decimal) (Account, error) {
	switch kind {
	case KindCredit:
		account.Balance = account.Balance.Add(amount)
		return account, nil
	case KindDebit:
		newBalance := account.Balance.Sub(amount)
		if newBalance.IsNegative() {
			return account, ErrInsufficientBalance
		}
		account.Balance = newBalance
		return account, nil
	default:
		return account, ErrInvalidEntryKind
	}
}

// ReverseEntry undoes the monetary effect of an entry: a debit is reversed by
// crediting the amount back, a credit by debiting it back. Reversal is not
// subject to the non-negative floor; removing a historical credit may
// legitimately leave the balance lower than before, and restoring a debit
// only adds money.
func ReverseEntry(account Account, kind EntryKind, amount decimal.Decimal) (Account, error) {
	switch kind {
	case KindCredit:
		account.Balance = account.Balance.Sub(amount)
		return account, nil
	case KindDebit:
		account.Balance = account.Balance.Add(amount)
		return account, nil
	default:
		return account, ErrInvalidEntryKind
	}
}
