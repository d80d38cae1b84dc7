package marketprovider

import (
	"context"

	"github.com/filecoin-project/go-address"
	"github.com/filecoin-project/go-state-types/abi"
	"golang.org/x/xerrors"

	"github.com/heart-network/marketplace/journal"
	"github.com/heart-network/marketplace/ledger"
	"github.com/heart-network/marketplace/models/repo"
	"github.com/heart-network/marketplace/types"
)

// Init stores the initial parameter singleton. It can only run once; every
// other operation fails with ErrNotInitialized until it has.
func (p *MarketProvider) Init(ctx context.Context, params *types.Params, saleHook *address.Address) error {
	if _, err := p.r.ParamsRepo().GetParams(ctx); err == nil {
		return xerrors.Errorf("marketplace already initialized")
	} else if !xerrors.Is(err, repo.ErrNotFound) {
		return err
	}

	if err := params.Validate(); err != nil {
		return err
	}
	params.Operators = types.SortDedupAddrs(params.Operators)

	if err := p.r.ParamsRepo().SetParams(ctx, params); err != nil {
		return err
	}
	if saleHook != nil {
		if err := p.r.HookRepo().AddHook(ctx, types.SaleHooks, *saleHook); err != nil {
			return err
		}
	}

	p.journal.RecordEvent(journal.EventType{System: "marketplace", Event: "init"}, params)
	log.Infow("marketplace initialized", "operators", len(params.Operators))
	return nil
}

// ParamUpdate is a partial parameter change; nil fields are left untouched.
type ParamUpdate struct {
	AskExpiry  *types.ExpiryRange
	BidExpiry  *types.ExpiryRange
	MinPrice   *abi.TokenAmount
	ListingFee *abi.TokenAmount
}

// UpdateParams applies a partial parameter change. Operator only.
func (p *MarketProvider) UpdateParams(ctx context.Context, caller address.Address, update *ParamUpdate) (*ledger.Bundle, error) {
	params, err := p.onlyOperator(ctx, caller)
	if err != nil {
		return nil, err
	}

	if update.AskExpiry != nil {
		params.AskExpiry = *update.AskExpiry
	}
	if update.BidExpiry != nil {
		params.BidExpiry = *update.BidExpiry
	}
	if update.MinPrice != nil {
		params.MinPrice = *update.MinPrice
	}
	if update.ListingFee != nil {
		params.ListingFee = *update.ListingFee
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}

	if err := p.r.ParamsRepo().SetParams(ctx, params); err != nil {
		return nil, err
	}

	p.journal.RecordEvent(journal.EventType{System: "marketplace", Event: "update-params"}, params)

	bundle := ledger.NewBundle()
	bundle.AddEvent(ledger.Event{Type: "update-params", Attributes: []ledger.Attribute{
		{Key: "operator", Value: caller.String()},
	}})
	return bundle, nil
}

// AddOperator grows the operator allow-list. Operator only; duplicates are
// rejected.
func (p *MarketProvider) AddOperator(ctx context.Context, caller, operator address.Address) (*ledger.Bundle, error) {
	params, err := p.onlyOperator(ctx, caller)
	if err != nil {
		return nil, err
	}
	if params.IsOperator(operator) {
		return nil, xerrors.Errorf("operator %s already registered", operator)
	}

	params.Operators = types.SortDedupAddrs(append(params.Operators, operator))
	if err := p.r.ParamsRepo().SetParams(ctx, params); err != nil {
		return nil, err
	}

	bundle := ledger.NewBundle()
	bundle.AddEvent(ledger.Event{Type: "add-operator", Attributes: []ledger.Attribute{
		{Key: "operator", Value: operator.String()},
	}})
	return bundle, nil
}

func (p *MarketProvider) RemoveOperator(ctx context.Context, caller, operator address.Address) (*ledger.Bundle, error) {
	params, err := p.onlyOperator(ctx, caller)
	if err != nil {
		return nil, err
	}
	if !params.IsOperator(operator) {
		return nil, xerrors.Errorf("operator %s not registered", operator)
	}

	kept := params.Operators[:0]
	for _, op := range params.Operators {
		if op != operator {
			kept = append(kept, op)
		}
	}
	params.Operators = kept
	if err := p.r.ParamsRepo().SetParams(ctx, params); err != nil {
		return nil, err
	}

	bundle := ledger.NewBundle()
	bundle.AddEvent(ledger.Event{Type: "remove-operator", Attributes: []ledger.Attribute{
		{Key: "operator", Value: operator.String()},
	}})
	return bundle, nil
}

// AddHook registers a notification subscriber in the given class. Operator
// only.
func (p *MarketProvider) AddHook(ctx context.Context, caller address.Address, class types.HookClass, hook address.Address) (*ledger.Bundle, error) {
	if !class.Valid() {
		return nil, xerrors.Errorf("invalid hook class %q", class)
	}
	if _, err := p.onlyOperator(ctx, caller); err != nil {
		return nil, err
	}
	if err := p.r.HookRepo().AddHook(ctx, class, hook); err != nil {
		return nil, err
	}

	bundle := ledger.NewBundle()
	bundle.AddEvent(ledger.Event{Type: "add-hook", Attributes: []ledger.Attribute{
		{Key: "class", Value: string(class)},
		{Key: "hook", Value: hook.String()},
	}})
	return bundle, nil
}

func (p *MarketProvider) RemoveHook(ctx context.Context, caller address.Address, class types.HookClass, hook address.Address) (*ledger.Bundle, error) {
	if !class.Valid() {
		return nil, xerrors.Errorf("invalid hook class %q", class)
	}
	if _, err := p.onlyOperator(ctx, caller); err != nil {
		return nil, err
	}
	if err := p.r.HookRepo().RemoveHook(ctx, class, hook); err != nil {
		return nil, err
	}

	bundle := ledger.NewBundle()
	bundle.AddEvent(ledger.Event{Type: "remove-hook", Attributes: []ledger.Attribute{
		{Key: "class", Value: string(class)},
		{Key: "hook", Value: hook.String()},
	}})
	return bundle, nil
}

func (p *MarketProvider) onlyOperator(ctx context.Context, caller address.Address) (*types.Params, error) {
	params, err := p.params(ctx)
	if err != nil {
		return nil, err
	}
	if !params.IsOperator(caller) {
		return nil, ErrNotOperator
	}
	return params, nil
}
