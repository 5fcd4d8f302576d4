// Package player holds the player's stats that live outside the inventory.
package player

import (
	"fmt"
	"sync"

	"github.com/osse101/farmstead/internal/domain"
)

// StartingMoney is the balance of a new game
const StartingMoney = 500

// Wallet holds the player's money
type Wallet struct {
	mu    sync.RWMutex
	money int
}

// NewWallet creates a wallet with the given balance
func NewWallet(money int) *Wallet {
	return &Wallet{money: max(money, 0)}
}

// Money returns the current balance
func (w *Wallet) Money() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.money
}

// Earn adds amount to the balance
func (w *Wallet) Earn(amount int) error {
	if amount < 0 {
		return fmt.Errorf("%w: earn %d", domain.ErrInvalidQuantity, amount)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.money += amount
	return nil
}

// Spend removes amount from the balance, failing if the player cannot afford it
func (w *Wallet) Spend(amount int) error {
	if amount < 0 {
		return fmt.Errorf("%w: spend %d", domain.ErrInvalidQuantity, amount)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.money < amount {
		return fmt.Errorf("%w: have %d, need %d", domain.ErrInsufficientFunds, w.money, amount)
	}
	w.money -= amount
	return nil
}

// Load replaces the balance
func (w *Wallet) Load(money int) error {
	if money < 0 {
		return fmt.Errorf("%w: negative balance %d", domain.ErrDeserializationMismatch, money)
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	w.money = money
	return nil
}
