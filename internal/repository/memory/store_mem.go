// internal/repository/memory/store_mem.go
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"solvest-backend/internal/domain"
	"solvest-backend/internal/repository"
	"solvest-backend/internal/util"
)

// data holds every table as a map keyed by ID, plus per-table sequences.
// Entities are stored by value so a snapshot is a plain map copy.
type data struct {
	users       map[int64]domain.User
	portfolios  map[int64]domain.Portfolio
	txs         map[int64]domain.Transaction
	referrals   map[int64]domain.Referral
	deposits    map[int64]domain.Deposit
	investments map[int64]domain.Investment
	withdrawals map[int64]domain.WithdrawalRequest
	seq         map[string]int64
}

func newData() *data {
	return &data{
		users:       make(map[int64]domain.User),
		portfolios:  make(map[int64]domain.Portfolio),
		txs:         make(map[int64]domain.Transaction),
		referrals:   make(map[int64]domain.Referral),
		deposits:    make(map[int64]domain.Deposit),
		investments: make(map[int64]domain.Investment),
		withdrawals: make(map[int64]domain.WithdrawalRequest),
		seq:         make(map[string]int64),
	}
}

func (d *data) next(table string) int64 {
	d.seq[table]++
	return d.seq[table]
}

func (d *data) clone() *data {
	c := newData()
	for k, v := range d.users {
		c.users[k] = v
	}
	for k, v := range d.portfolios {
		c.portfolios[k] = v
	}
	for k, v := range d.txs {
		c.txs[k] = v
	}
	for k, v := range d.referrals {
		c.referrals[k] = v
	}
	for k, v := range d.deposits {
		c.deposits[k] = v
	}
	for k, v := range d.investments {
		c.investments[k] = v
	}
	for k, v := range d.withdrawals {
		c.withdrawals[k] = v
	}
	for k, v := range d.seq {
		c.seq[k] = v
	}
	return c
}

// Store implements repository.Store entirely in memory. A single mutex
// serializes all access, which gives the same per-user balance serialization
// the PostgreSQL store gets from row locks. WithinTx snapshots the data and
// restores it when fn fails, so workflows are atomic here too.
type Store struct {
	mu   sync.Mutex
	d    *data
	inTx bool
}

// NewStore creates an empty in-memory Store.
func NewStore() *Store {
	return &Store{d: newData()}
}

// lock acquires the store mutex unless the store is a transaction view, in
// which case the outer WithinTx already holds it.
func (s *Store) lock() func() {
	if s.inTx {
		return func() {}
	}
	s.mu.Lock()
	return s.mu.Unlock
}

func (s *Store) Users() repository.UserRepository               { return &userRepo{s} }
func (s *Store) Portfolios() repository.PortfolioRepository     { return &portfolioRepo{s} }
func (s *Store) Transactions() repository.TransactionRepository { return &transactionRepo{s} }
func (s *Store) Referrals() repository.ReferralRepository       { return &referralRepo{s} }
func (s *Store) Deposits() repository.DepositRepository         { return &depositRepo{s} }
func (s *Store) Investments() repository.InvestmentRepository   { return &investmentRepo{s} }
func (s *Store) Withdrawals() repository.WithdrawalRepository   { return &withdrawalRepo{s} }

// WithinTx runs fn against a transaction view of the store. On error the
// pre-transaction snapshot is restored. Nested calls reuse the enclosing
// transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(repository.Store) error) error {
	if s.inTx {
		return fn(s)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.d.clone()
	view := &Store{d: s.d, inTx: true}
	if err := fn(view); err != nil {
		*s.d = *snapshot
		return err
	}
	return nil
}

type userRepo struct{ s *Store }

func (r *userRepo) Create(ctx context.Context, user *domain.User) error {
	defer r.s.lock()()
	for _, u := range r.s.d.users {
		if u.Email == user.Email {
			return util.ErrDuplicateEmail
		}
	}
	user.ID = r.s.d.next("users")
	r.s.d.users[user.ID] = *user
	return nil
}

func (r *userRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	defer r.s.lock()()
	u, ok := r.s.d.users[id]
	if !ok {
		return nil, util.ErrNotFound
	}
	return &u, nil
}

// GetByIDForUpdate is identical to GetByID here: the store mutex held by the
// enclosing WithinTx already serializes the read-then-write.
func (r *userRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.User, error) {
	return r.GetByID(ctx, id)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	defer r.s.lock()()
	for _, u := range r.s.d.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, util.ErrNotFound
}

func (r *userRepo) GetByReferralCode(ctx context.Context, code string) (*domain.User, error) {
	defer r.s.lock()()
	for _, u := range r.s.d.users {
		if u.ReferralCode == code {
			return &u, nil
		}
	}
	return nil, util.ErrNotFound
}

func (r *userRepo) AddToBalance(ctx context.Context, userID int64, delta decimal.Decimal) error {
	defer r.s.lock()()
	u, ok := r.s.d.users[userID]
	if !ok {
		return util.ErrUserNotFound
	}
	u.WalletBalance = u.WalletBalance.Add(delta)
	r.s.d.users[userID] = u
	return nil
}

type portfolioRepo struct{ s *Store }

func (r *portfolioRepo) Create(ctx context.Context, portfolio *domain.Portfolio) error {
	defer r.s.lock()()
	portfolio.ID = r.s.d.next("portfolios")
	r.s.d.portfolios[portfolio.ID] = *portfolio
	return nil
}

func (r *portfolioRepo) GetByUserID(ctx context.Context, userID int64) (*domain.Portfolio, error) {
	defer r.s.lock()()
	for _, p := range r.s.d.portfolios {
		if p.UserID == userID {
			return &p, nil
		}
	}
	return nil, util.ErrNotFound
}

func (r *portfolioRepo) UpdateValue(ctx context.Context, userID int64, totalValue decimal.Decimal) error {
	defer r.s.lock()()
	for id, p := range r.s.d.portfolios {
		if p.UserID == userID {
			p.TotalValue = totalValue
			p.LastUpdated = time.Now().UTC()
			r.s.d.portfolios[id] = p
			return nil
		}
	}
	return util.ErrNotFound
}

type transactionRepo struct{ s *Store }

func (r *transactionRepo) Create(ctx context.Context, transaction *domain.Transaction) error {
	defer r.s.lock()()
	transaction.ID = r.s.d.next("transactions")
	r.s.d.txs[transaction.ID] = *transaction
	return nil
}

func (r *transactionRepo) ListByUser(ctx context.Context, userID int64, limit, offset int) ([]domain.Transaction, int64, error) {
	defer r.s.lock()()
	all := []domain.Transaction{}
	for _, t := range r.s.d.txs {
		if t.UserID == userID {
			all = append(all, t)
		}
	}
	sort.Slice(all, func(i, j int) bool {
		if !all[i].CreatedAt.Equal(all[j].CreatedAt) {
			return all[i].CreatedAt.After(all[j].CreatedAt)
		}
		return all[i].ID > all[j].ID
	})
	total := int64(len(all))
	if offset >= len(all) {
		return []domain.Transaction{}, total, nil
	}
	all = all[offset:]
	if limit < len(all) {
		all = all[:limit]
	}
	return all, total, nil
}

type referralRepo struct{ s *Store }

func (r *referralRepo) Create(ctx context.Context, referral *domain.Referral) error {
	defer r.s.lock()()
	referral.ID = r.s.d.next("referrals")
	r.s.d.referrals[referral.ID] = *referral
	return nil
}

func (r *referralRepo) ListByReferrer(ctx context.Context, referrerID int64) ([]domain.Referral, error) {
	defer r.s.lock()()
	out := []domain.Referral{}
	for _, ref := range r.s.d.referrals {
		if ref.ReferrerID == referrerID {
			out = append(out, ref)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

type depositRepo struct{ s *Store }

func (r *depositRepo) Create(ctx context.Context, deposit *domain.Deposit) error {
	defer r.s.lock()()
	deposit.ID = r.s.d.next("deposits")
	r.s.d.deposits[deposit.ID] = *deposit
	return nil
}

func (r *depositRepo) GetByID(ctx context.Context, id int64) (*domain.Deposit, error) {
	defer r.s.lock()()
	d, ok := r.s.d.deposits[id]
	if !ok {
		return nil, util.ErrNotFound
	}
	return &d, nil
}

// GetByIDForUpdate is identical to GetByID here: the store mutex held by the
// enclosing transaction already serializes access.
func (r *depositRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.Deposit, error) {
	return r.GetByID(ctx, id)
}

func (r *depositRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Deposit, error) {
	defer r.s.lock()()
	out := []domain.Deposit{}
	for _, d := range r.s.d.deposits {
		if d.UserID == userID {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *depositRepo) UpdateStatus(ctx context.Context, id int64, status domain.DepositStatus) error {
	defer r.s.lock()()
	d, ok := r.s.d.deposits[id]
	if !ok {
		return util.ErrDepositNotFound
	}
	now := time.Now().UTC()
	d.Status = status
	d.ProcessedAt = &now
	r.s.d.deposits[id] = d
	return nil
}

type investmentRepo struct{ s *Store }

func (r *investmentRepo) Create(ctx context.Context, investment *domain.Investment) error {
	defer r.s.lock()()
	investment.ID = r.s.d.next("investments")
	r.s.d.investments[investment.ID] = *investment
	return nil
}

func (r *investmentRepo) GetByID(ctx context.Context, id int64) (*domain.Investment, error) {
	defer r.s.lock()()
	inv, ok := r.s.d.investments[id]
	if !ok {
		return nil, util.ErrNotFound
	}
	return &inv, nil
}

func (r *investmentRepo) ListByUser(ctx context.Context, userID int64) ([]domain.Investment, error) {
	defer r.s.lock()()
	out := []domain.Investment{}
	for _, inv := range r.s.d.investments {
		if inv.UserID == userID {
			out = append(out, inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *investmentRepo) ListActive(ctx context.Context) ([]domain.Investment, error) {
	defer r.s.lock()()
	out := []domain.Investment{}
	for _, inv := range r.s.d.investments {
		if inv.Status == domain.InvestmentStatusActive {
			out = append(out, inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (r *investmentRepo) UpdateProfit(ctx context.Context, id int64, totalProfit decimal.Decimal) error {
	defer r.s.lock()()
	inv, ok := r.s.d.investments[id]
	if !ok {
		return util.ErrInvestmentNotFound
	}
	inv.TotalProfit = totalProfit
	r.s.d.investments[id] = inv
	return nil
}

func (r *investmentRepo) UpdateStatus(ctx context.Context, id int64, status domain.InvestmentStatus) error {
	defer r.s.lock()()
	inv, ok := r.s.d.investments[id]
	if !ok {
		return util.ErrInvestmentNotFound
	}
	inv.Status = status
	r.s.d.investments[id] = inv
	return nil
}

type withdrawalRepo struct{ s *Store }

func (r *withdrawalRepo) Create(ctx context.Context, withdrawal *domain.WithdrawalRequest) error {
	defer r.s.lock()()
	withdrawal.ID = r.s.d.next("withdrawals")
	r.s.d.withdrawals[withdrawal.ID] = *withdrawal
	return nil
}

func (r *withdrawalRepo) GetByID(ctx context.Context, id int64) (*domain.WithdrawalRequest, error) {
	defer r.s.lock()()
	w, ok := r.s.d.withdrawals[id]
	if !ok {
		return nil, util.ErrNotFound
	}
	return &w, nil
}

// GetByIDForUpdate is identical to GetByID here: the store mutex held by the
// enclosing transaction already serializes access.
func (r *withdrawalRepo) GetByIDForUpdate(ctx context.Context, id int64) (*domain.WithdrawalRequest, error) {
	return r.GetByID(ctx, id)
}

func (r *withdrawalRepo) ListByUser(ctx context.Context, userID int64) ([]domain.WithdrawalRequest, error) {
	defer r.s.lock()()
	out := []domain.WithdrawalRequest{}
	for _, w := range r.s.d.withdrawals {
		if w.UserID == userID {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (r *withdrawalRepo) UpdateStatus(ctx context.Context, id int64, status domain.WithdrawalStatus, txHash *string) error {
	defer r.s.lock()()
	w, ok := r.s.d.withdrawals[id]
	if !ok {
		return util.ErrWithdrawalNotFound
	}
	now := time.Now().UTC()
	w.Status = status
	w.ProcessedAt = &now
	w.TxHash = txHash
	r.s.d.withdrawals[id] = w
	return nil
}
