package reconciler

import (
	"context"
	"fmt"
	"math/big"

	"go.uber.org/zap"

	"github.com/artzone/artzone-indexer/internal/domain"
	"github.com/artzone/artzone-indexer/internal/logger"
	"github.com/artzone/artzone-indexer/internal/metrics"
	"github.com/artzone/artzone-indexer/internal/repository"
	"github.com/artzone/artzone-indexer/internal/store/schema"
)

// Reconciler folds normalized minter events into the entity store. Events
// must be applied one at a time in source order; the reconciler itself holds
// no state between events.
//
//go:generate mockgen -source=reconciler.go -destination=../mocks/reconciler.go -package=mocks
type Reconciler interface {
	// Apply folds one event into the store
	Apply(ctx context.Context, event *domain.Event) error
}

type reconciler struct {
	repo repository.Repository
}

// New creates a reconciler over a repository
func New(repo repository.Repository) Reconciler {
	return &reconciler{repo: repo}
}

// Apply folds one event into the store
func (r *reconciler) Apply(ctx context.Context, event *domain.Event) error {
	if !event.Valid() {
		metrics.EventsProcessed.WithLabelValues(string(event.Type), "invalid").Inc()
		return fmt.Errorf("invalid %s event %s", event.Type, event.MessageID())
	}

	var err error
	switch event.Type {
	case domain.EventTypeTransferSingle:
		err = r.handleTransferSingle(ctx, event)
	case domain.EventTypeTransferBatch:
		err = r.handleTransferBatch(ctx, event)
	case domain.EventTypeTokenInitialisation:
		err = r.handleTokenInitialisation(ctx, event)
	case domain.EventTypeTokenMint:
		err = r.handleTokenMint(ctx, event)
	default:
		err = fmt.Errorf("unhandled event type %s", event.Type)
	}

	if err != nil {
		metrics.EventsProcessed.WithLabelValues(string(event.Type), "error").Inc()
		return err
	}

	metrics.EventsProcessed.WithLabelValues(string(event.Type), "success").Inc()
	return nil
}

// handleTransferSingle applies one single-token transfer
func (r *reconciler) handleTransferSingle(ctx context.Context, event *domain.Event) error {
	return r.applyTransferLeg(ctx, event, event.TokenNumber, event.Quantity)
}

// handleTransferBatch applies each leg of a batch transfer as if it were a
// single transfer. A zero-length batch touches nothing.
func (r *reconciler) handleTransferBatch(ctx context.Context, event *domain.Event) error {
	for i := range event.TokenNumbers {
		if err := r.applyTransferLeg(ctx, event, event.TokenNumbers[i], event.Quantities[i]); err != nil {
			return err
		}
	}
	return nil
}

// applyTransferLeg moves quantity editions of one token between two holders:
// the transfer row, both user rows and both balance rows are created on
// demand, then the sender's balance is debited and the recipient's credited.
func (r *reconciler) applyTransferLeg(ctx context.Context, event *domain.Event, tokenNumber, quantity string) error {
	if _, err := r.repo.GetOrCreateArtzoneToken(ctx, event.ContractAddress, tokenNumber); err != nil {
		return err
	}

	if _, err := r.repo.CreateTransfer(ctx, event, tokenNumber, quantity); err != nil {
		return err
	}

	fromBalance, err := r.repo.GetOrCreateUserBalance(ctx, event.From, tokenNumber, event.ContractAddress)
	if err != nil {
		return err
	}

	fromBalance.Balance, err = subtract(fromBalance.Balance, quantity)
	if err != nil {
		return err
	}
	fromBalance.TotalSent, err = add(fromBalance.TotalSent, quantity)
	if err != nil {
		return err
	}
	r.observeNegative(fromBalance)
	if err := r.repo.SaveUserBalance(ctx, fromBalance); err != nil {
		return err
	}

	toBalance, err := r.repo.GetOrCreateUserBalance(ctx, event.To, tokenNumber, event.ContractAddress)
	if err != nil {
		return err
	}

	toBalance.Balance, err = add(toBalance.Balance, quantity)
	if err != nil {
		return err
	}
	toBalance.TotalReceived, err = add(toBalance.TotalReceived, quantity)
	if err != nil {
		return err
	}
	r.observeNegative(toBalance)
	return r.repo.SaveUserBalance(ctx, toBalance)
}

// handleTokenInitialisation rebuilds the token record from fresh supply
// reads. The royalty terms carried by the event are authoritative, so the
// contract's royaltyInfo is never consulted on this path.
func (r *reconciler) handleTokenInitialisation(ctx context.Context, event *domain.Event) error {
	percent, ok := new(big.Int).SetString(event.RoyaltyPercent, 10)
	if !ok {
		return fmt.Errorf("invalid royalty percent %s in event %s", event.RoyaltyPercent, event.MessageID())
	}

	_, err := r.repo.InitializeArtzoneToken(ctx, event.ContractAddress, event.TokenNumber, event.BlockTimestamp, domain.RoyaltyInfo{
		Amount:   percent,
		Receiver: domain.NormalizeAddress(event.RoyaltyReceiver),
	})
	return err
}

// handleTokenMint adds the minted quantity to the token's total supply. The
// holder's balance is untouched here: the mint is always accompanied by a
// transfer from the zero address, which carries the balance movement.
func (r *reconciler) handleTokenMint(ctx context.Context, event *domain.Event) error {
	record, err := r.repo.GetOrCreateArtzoneToken(ctx, event.ContractAddress, event.TokenNumber)
	if err != nil {
		return err
	}

	record.TotalSupply, err = add(record.TotalSupply, event.Quantity)
	if err != nil {
		return err
	}

	return r.repo.SaveArtzoneToken(ctx, record)
}

// observeNegative flags a balance row that has gone below zero. The value is
// kept as-is; a negative balance means events arrived out of source order.
func (r *reconciler) observeNegative(balance *schema.UserBalance) {
	if len(balance.Balance) > 0 && balance.Balance[0] == '-' {
		metrics.NegativeBalances.Inc()
		logger.Warn("holder balance went negative",
			zap.String("balance_id", balance.ID),
			zap.String("balance", balance.Balance))
	}
}

// add returns a + b over decimal strings
func add(a, b string) (string, error) {
	x, y, err := parsePair(a, b)
	if err != nil {
		return "", err
	}
	return new(big.Int).Add(x, y).String(), nil
}

// subtract returns a - b over decimal strings
func subtract(a, b string) (string, error) {
	x, y, err := parsePair(a, b)
	if err != nil {
		return "", err
	}
	return new(big.Int).Sub(x, y).String(), nil
}

func parsePair(a, b string) (*big.Int, *big.Int, error) {
	x, ok := new(big.Int).SetString(a, 10)
	if !ok {
		return nil, nil, fmt.Errorf("invalid quantity: %s", a)
	}
	y, ok := new(big.Int).SetString(b, 10)
	if !ok {
		return nil, nil, fmt.Errorf("invalid quantity: %s", b)
	}
	return x, y, nil
}
