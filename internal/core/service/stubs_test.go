package service

import (
	"context"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/xxtryitxx/horizontos/internal/core/domain"
)

// ---------------------------------------------------------------------------
// Shared in-memory stubs
// ---------------------------------------------------------------------------

// callLog records cross-stub call ordering for write-order assertions.
type callLog struct {
	mu      sync.Mutex
	entries []string
}

func (l *callLog) add(entry string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, entry)
}

func (l *callLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.entries...)
}

type stubUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
	seq   int

	createErr        error
	updateDisplayErr error
	// missFirstFind makes the first FindByID miss even when the user
	// exists, to simulate losing the create race.
	missFirstFind bool
	// afterFind runs after each successful FindByID, handy for injecting
	// a concurrent write between a read and its follow-up persist.
	afterFind func()

	log *callLog

	lastListLimit int64
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User), log: &callLog{}}
}

func (r *stubUserRepo) add(u *domain.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *u
	r.users[u.ID] = &clone
}

func (r *stubUserRepo) get(id string) *domain.User {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[id]; ok {
		clone := *u
		return &clone
	}
	return nil
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		r.seq++
		user.ID = "gen_" + strconv.Itoa(r.seq)
	}
	if _, ok := r.users[user.ID]; ok {
		return domain.ErrUserExists
	}
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.missFirstFind {
		r.missFirstFind = false
		return nil, domain.ErrUserNotFound
	}
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	clone := *u
	if r.afterFind != nil {
		r.afterFind()
	}
	return &clone, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) UpdateProfile(_ context.Context, id, name, avatar, birthday string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Name, u.Avatar, u.Birthday = name, avatar, birthday
	return nil
}

func (r *stubUserRepo) UpdateDisplayRole(_ context.Context, id, role string, isAdmin bool) error {
	if r.log != nil {
		r.log.add("users.UpdateDisplayRole")
	}
	if r.updateDisplayErr != nil {
		return r.updateDisplayErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Role, u.IsAdmin = role, isAdmin
	return nil
}

func (r *stubUserRepo) SetLocked(_ context.Context, id string, locked bool, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Locked = locked
	if locked {
		u.LockedAt = &at
	} else {
		u.LockedAt = nil
	}
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

func (r *stubUserRepo) IncrementScore(_ context.Context, id string, delta int64) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return 0, domain.ErrUserNotFound
	}
	u.Score += delta
	return u.Score, nil
}

func (r *stubUserRepo) AddBadges(_ context.Context, id string, badges []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	have := make(map[string]struct{}, len(u.Badges))
	for _, b := range u.Badges {
		have[b] = struct{}{}
	}
	for _, b := range badges {
		if _, ok := have[b]; !ok {
			u.Badges = append(u.Badges, b)
		}
	}
	return nil
}

func (r *stubUserRepo) SetMentor(_ context.Context, menteeID, mentorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[menteeID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.MentorID = mentorID
	return nil
}

func (r *stubUserRepo) IncrementMentees(_ context.Context, mentorID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[mentorID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.Mentees++
	return nil
}

func (r *stubUserRepo) IncrementGamesPlayed(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.GamesPlayed++
	return nil
}

func (r *stubUserRepo) ListByScore(_ context.Context, limit int64) ([]*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastListLimit = limit
	var out []*domain.User
	for _, u := range r.users {
		clone := *u
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubUserRepo) ListAll(_ context.Context) ([]*domain.User, error) {
	return r.ListByScore(context.Background(), int64(1<<62))
}

type stubClaimsRepo struct {
	mu     sync.Mutex
	claims map[string]domain.TrustClaims
	getErr error
	setErr error
	log    *callLog
}

func newStubClaimsRepo() *stubClaimsRepo {
	return &stubClaimsRepo{claims: make(map[string]domain.TrustClaims), log: &callLog{}}
}

func (r *stubClaimsRepo) Get(_ context.Context, principalID string) (domain.TrustClaims, error) {
	if r.getErr != nil {
		return domain.TrustClaims{}, r.getErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.claims[principalID], nil
}

func (r *stubClaimsRepo) SetRole(_ context.Context, principalID, role string, admin bool) error {
	if r.log != nil {
		r.log.add("claims.SetRole")
	}
	if r.setErr != nil {
		return r.setErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	c := r.claims[principalID]
	c.Role, c.Admin = role, admin
	r.claims[principalID] = c
	return nil
}

type stubPostRepo struct {
	mu        sync.Mutex
	posts     map[string]*domain.Post
	seq       int
	deleteErr error

	deletedAuthors []string
}

func newStubPostRepo() *stubPostRepo {
	return &stubPostRepo{posts: make(map[string]*domain.Post)}
}

func (r *stubPostRepo) Insert(_ context.Context, post *domain.Post) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if post.ID == "" {
		r.seq++
		post.ID = "post_" + strconv.Itoa(r.seq)
	}
	clone := *post
	r.posts[post.ID] = &clone
	return nil
}

func (r *stubPostRepo) List(_ context.Context, limit int64) ([]*domain.Post, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Post
	for _, p := range r.posts {
		clone := *p
		out = append(out, &clone)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (r *stubPostRepo) Like(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.posts[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Likes++
	return nil
}

func (r *stubPostRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.posts[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.posts, id)
	return nil
}

func (r *stubPostRepo) DeleteByAuthor(_ context.Context, authorID string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deletedAuthors = append(r.deletedAuthors, authorID)
	for id, p := range r.posts {
		if p.AuthorID == authorID {
			delete(r.posts, id)
		}
	}
	return nil
}

type stubMessageRepo struct {
	mu       sync.Mutex
	messages []domain.Message
	seq      int

	lastLimit int64
}

func (r *stubMessageRepo) Insert(_ context.Context, msg *domain.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	msg.ID = "msg_" + strconv.Itoa(r.seq)
	r.messages = append(r.messages, *msg)
	return nil
}

func (r *stubMessageRepo) Conversation(_ context.Context, a, b string, limit int64) ([]domain.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastLimit = limit
	var out []domain.Message
	for _, m := range r.messages {
		if (m.SenderID == a && m.ReceiverID == b) || (m.SenderID == b && m.ReceiverID == a) {
			out = append(out, m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.Before(out[j].Timestamp) })
	return out, nil
}

type busEvent struct {
	channel string
	payload []byte
}

type stubBus struct {
	mu         sync.Mutex
	published  []busEvent
	publishErr error
}

func (b *stubBus) Publish(_ context.Context, channel string, payload []byte) error {
	if b.publishErr != nil {
		return b.publishErr
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.published = append(b.published, busEvent{channel: channel, payload: payload})
	return nil
}

func (b *stubBus) Subscribe(_ context.Context, _ string) (<-chan []byte, func(), error) {
	ch := make(chan []byte)
	return ch, func() { close(ch) }, nil
}

func (b *stubBus) events() []busEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]busEvent(nil), b.published...)
}

type stubAssistant struct {
	reply string
	err   error
}

func (a *stubAssistant) Generate(_ context.Context, _ string) (string, error) {
	return a.reply, a.err
}

type stubMailer struct {
	err  error
	sent chan string // receives "to|subject" per delivery
}

func newStubMailer() *stubMailer {
	return &stubMailer{sent: make(chan string, 8)}
}

func (m *stubMailer) SendEmail(_ context.Context, to, subject, _ string) error {
	if m.err != nil {
		return m.err
	}
	m.sent <- to + "|" + subject
	return nil
}

type stubNotificationRepo struct {
	mu            sync.Mutex
	notifications []*domain.Notification
	seq           int
}

func (r *stubNotificationRepo) Insert(_ context.Context, n *domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	n.ID = "notif_" + strconv.Itoa(r.seq)
	clone := *n
	r.notifications = append(r.notifications, &clone)
	return nil
}

func (r *stubNotificationRepo) MarkRead(_ context.Context, userID, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range r.notifications {
		if n.ID == id && n.UserID == userID {
			n.Read = true
			return nil
		}
	}
	return domain.ErrNotFound
}

func (r *stubNotificationRepo) ListByUser(_ context.Context, userID string, limit int64) ([]*domain.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.Notification
	for _, n := range r.notifications {
		if n.UserID == userID {
			clone := *n
			out = append(out, &clone)
		}
	}
	if int64(len(out)) > limit {
		out = out[:limit]
	}
	return out, nil
}

type stubSwapRepo struct {
	mu    sync.Mutex
	swaps map[string]*domain.ShiftSwapRequest
	seq   int
}

func newStubSwapRepo() *stubSwapRepo {
	return &stubSwapRepo{swaps: make(map[string]*domain.ShiftSwapRequest)}
}

func (r *stubSwapRepo) Insert(_ context.Context, req *domain.ShiftSwapRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	req.ID = "swap_" + strconv.Itoa(r.seq)
	clone := *req
	r.swaps[req.ID] = &clone
	return nil
}

func (r *stubSwapRepo) FindByID(_ context.Context, id string) (*domain.ShiftSwapRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.swaps[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *stubSwapRepo) UpdateStatus(_ context.Context, id string, status domain.SwapStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.swaps[id]
	if !ok {
		return domain.ErrNotFound
	}
	s.Status = status
	return nil
}

func (r *stubSwapRepo) ListByRecipient(_ context.Context, recipientID string) ([]*domain.ShiftSwapRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.ShiftSwapRequest
	for _, s := range r.swaps {
		if s.RecipientID == recipientID {
			clone := *s
			out = append(out, &clone)
		}
	}
	return out, nil
}

type stubTradeRepo struct {
	mu     sync.Mutex
	trades map[string]*domain.ShiftTrade
	seq    int
}

func newStubTradeRepo() *stubTradeRepo {
	return &stubTradeRepo{trades: make(map[string]*domain.ShiftTrade)}
}

func (r *stubTradeRepo) Insert(_ context.Context, trade *domain.ShiftTrade) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	trade.ID = "trade_" + strconv.Itoa(r.seq)
	clone := *trade
	r.trades[trade.ID] = &clone
	return nil
}

func (r *stubTradeRepo) FindByID(_ context.Context, id string) (*domain.ShiftTrade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trades[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	clone := *t
	clone.Volunteers = append([]string(nil), t.Volunteers...)
	return &clone, nil
}

func (r *stubTradeRepo) AddVolunteer(_ context.Context, id, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trades[id]
	if !ok {
		return domain.ErrNotFound
	}
	for _, v := range t.Volunteers {
		if v == userID {
			return nil
		}
	}
	t.Volunteers = append(t.Volunteers, userID)
	return nil
}

func (r *stubTradeRepo) Assign(_ context.Context, id, userID string, status domain.TradeStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trades[id]
	if !ok {
		return domain.ErrNotFound
	}
	t.AssignedTo, t.Status = userID, status
	return nil
}

func (r *stubTradeRepo) UpdateStatus(_ context.Context, id string, status domain.TradeStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.trades[id]
	if !ok {
		return domain.ErrNotFound
	}
	t.Status = status
	return nil
}

func (r *stubTradeRepo) ListOpen(_ context.Context) ([]*domain.ShiftTrade, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*domain.ShiftTrade
	for _, t := range r.trades {
		if t.Status == domain.TradeOpen {
			clone := *t
			out = append(out, &clone)
		}
	}
	return out, nil
}

type notifyCall struct {
	userID string
	typ    domain.NotificationType
	title  string
}

type stubNotifier struct {
	mu    sync.Mutex
	calls []notifyCall
	err   error
}

func (n *stubNotifier) Notify(_ context.Context, userID string, typ domain.NotificationType, title, _ string, _ domain.NotificationData) error {
	if n.err != nil {
		return n.err
	}
	n.mu.Lock()
	defer n.mu.Unlock()
	n.calls = append(n.calls, notifyCall{userID: userID, typ: typ, title: title})
	return nil
}

func (n *stubNotifier) MarkRead(_ context.Context, _, _ string) error { return nil }

func (n *stubNotifier) ListFor(_ context.Context, _ string) ([]*domain.Notification, error) {
	return nil, nil
}
