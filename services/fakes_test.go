package services

import (
	"context"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/Dosada05/matchday/live"
	"github.com/Dosada05/matchday/models"
	"github.com/Dosada05/matchday/repositories"
	"github.com/Dosada05/matchday/storage"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func intPtr(v int) *int { return &v }

// fakeTx выполняет fn без БД. Изменения фейковых репозиториев не откатываются,
// поэтому сервисы обязаны сохранять данные только после всех проверок.
type fakeTx struct {
	calls int
}

func (t *fakeTx) WithinTx(_ context.Context, fn func(exec repositories.SQLExecutor) error) error {
	t.calls++
	return fn(nil)
}

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[int]models.User
	roles  map[int][]models.UserRole
	nextID int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[int]models.User{}, roles: map[int][]models.UserRole{}, nextID: 1}
}

func (r *fakeUserRepo) add(u models.User, roles ...models.UserRole) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	r.roles[u.ID] = roles
	if u.ID >= r.nextID {
		r.nextID = u.ID + 1
	}
}

func (r *fakeUserRepo) Create(_ context.Context, _ repositories.SQLExecutor, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, user.Email) {
			return repositories.ErrUserEmailConflict
		}
	}
	user.ID = r.nextID
	r.nextID++
	user.CreatedAt = time.Now()
	r.users[user.ID] = *user
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id int) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrUserNotFound
	}
	return &u, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if strings.EqualFold(u.Email, email) {
			return &u, nil
		}
	}
	return nil, repositories.ErrUserNotFound
}

func (r *fakeUserRepo) ListRoles(_ context.Context, userID int) ([]models.UserRole, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[userID]; !ok {
		return nil, repositories.ErrUserNotFound
	}
	return append([]models.UserRole(nil), r.roles[userID]...), nil
}

func (r *fakeUserRepo) AddRole(_ context.Context, _ repositories.SQLExecutor, userID int, role models.UserRole) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[userID]; !ok {
		return repositories.ErrUserNotFound
	}
	for _, existing := range r.roles[userID] {
		if existing == role {
			return nil
		}
	}
	r.roles[userID] = append(r.roles[userID], role)
	return nil
}

type fakeTeamRepo struct {
	mu     sync.Mutex
	teams  map[int]models.Team
	nextID int
}

func newFakeTeamRepo(teams ...models.Team) *fakeTeamRepo {
	r := &fakeTeamRepo{teams: map[int]models.Team{}, nextID: 1}
	for _, t := range teams {
		r.teams[t.ID] = t
		if t.ID >= r.nextID {
			r.nextID = t.ID + 1
		}
	}
	return r
}

func (r *fakeTeamRepo) Create(_ context.Context, team *models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, t := range r.teams {
		if t.Name == team.Name {
			return repositories.ErrTeamNameConflict
		}
	}
	team.ID = r.nextID
	r.nextID++
	r.teams[team.ID] = *team
	return nil
}

func (r *fakeTeamRepo) GetByID(_ context.Context, id int) (*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.teams[id]
	if !ok {
		return nil, repositories.ErrTeamNotFound
	}
	return &t, nil
}

func (r *fakeTeamRepo) GetByIDs(_ context.Context, ids []int) (map[int]*models.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[int]*models.Team, len(ids))
	for _, id := range ids {
		if t, ok := r.teams[id]; ok {
			out[id] = &t
		}
	}
	return out, nil
}

func (r *fakeTeamRepo) List(_ context.Context, page models.Page) ([]*models.Team, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ids := make([]int, 0, len(r.teams))
	for id := range r.teams {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	var out []*models.Team
	for i, id := range ids {
		if i < page.Offset() || len(out) >= page.Limit {
			continue
		}
		t := r.teams[id]
		out = append(out, &t)
	}
	return out, len(ids), nil
}

func (r *fakeTeamRepo) ListIDsByLeader(_ context.Context, leaderID int) ([]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ids []int
	for id, t := range r.teams {
		if t.LeaderID == leaderID {
			ids = append(ids, id)
		}
	}
	sort.Ints(ids)
	return ids, nil
}

func (r *fakeTeamRepo) Update(_ context.Context, team *models.Team) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.teams[team.ID]; !ok {
		return repositories.ErrTeamNotFound
	}
	r.teams[team.ID] = *team
	return nil
}

func (r *fakeTeamRepo) UpdateLogoKey(_ context.Context, teamID int, logoKey *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.teams[teamID]
	if !ok {
		return repositories.ErrTeamNotFound
	}
	t.LogoKey = logoKey
	r.teams[teamID] = t
	return nil
}

func (r *fakeTeamRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.teams[id]; !ok {
		return repositories.ErrTeamNotFound
	}
	delete(r.teams, id)
	return nil
}

type fakePlayerRepo struct {
	mu      sync.Mutex
	players map[int]models.Player
	nextID  int
}

func newFakePlayerRepo(players ...models.Player) *fakePlayerRepo {
	r := &fakePlayerRepo{players: map[int]models.Player{}, nextID: 1}
	for _, p := range players {
		r.players[p.ID] = p
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
	}
	return r
}

func (r *fakePlayerRepo) Create(_ context.Context, player *models.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.players {
		if p.TeamID == player.TeamID && p.JerseyNumber != nil && player.JerseyNumber != nil && *p.JerseyNumber == *player.JerseyNumber {
			return repositories.ErrPlayerJerseyConflict
		}
	}
	player.ID = r.nextID
	r.nextID++
	r.players[player.ID] = *player
	return nil
}

func (r *fakePlayerRepo) GetByID(_ context.Context, id int) (*models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.players[id]
	if !ok {
		return nil, repositories.ErrPlayerNotFound
	}
	return &p, nil
}

func (r *fakePlayerRepo) GetByIDs(_ context.Context, _ repositories.SQLExecutor, ids []int) (map[int]*models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[int]*models.Player, len(ids))
	for _, id := range ids {
		if p, ok := r.players[id]; ok {
			out[id] = &p
		}
	}
	return out, nil
}

func (r *fakePlayerRepo) ListByTeam(_ context.Context, teamID int) ([]models.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Player
	for _, p := range r.players {
		if p.TeamID == teamID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakePlayerRepo) Update(_ context.Context, player *models.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.players[player.ID]; !ok {
		return repositories.ErrPlayerNotFound
	}
	r.players[player.ID] = *player
	return nil
}

func (r *fakePlayerRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.players[id]; !ok {
		return repositories.ErrPlayerNotFound
	}
	delete(r.players, id)
	return nil
}

type fakeTournamentRepo struct {
	mu          sync.Mutex
	tournaments map[int]models.Tournament
	nextID      int
}

func newFakeTournamentRepo(ts ...models.Tournament) *fakeTournamentRepo {
	r := &fakeTournamentRepo{tournaments: map[int]models.Tournament{}, nextID: 1}
	for _, t := range ts {
		r.tournaments[t.ID] = t
		if t.ID >= r.nextID {
			r.nextID = t.ID + 1
		}
	}
	return r
}

func (r *fakeTournamentRepo) Create(_ context.Context, t *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	t.ID = r.nextID
	r.nextID++
	r.tournaments[t.ID] = *t
	return nil
}

func (r *fakeTournamentRepo) GetByID(_ context.Context, id int) (*models.Tournament, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.tournaments[id]
	if !ok {
		return nil, repositories.ErrTournamentNotFound
	}
	return &t, nil
}

func (r *fakeTournamentRepo) List(_ context.Context, filter repositories.TournamentFilter, page models.Page) ([]*models.Tournament, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Tournament
	for _, t := range r.tournaments {
		if filter.Status != nil && t.Status != *filter.Status {
			continue
		}
		if filter.OrganizerID != nil && t.OrganizerID != *filter.OrganizerID {
			continue
		}
		t := t
		out = append(out, &t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (r *fakeTournamentRepo) Update(_ context.Context, t *models.Tournament) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tournaments[t.ID]; !ok {
		return repositories.ErrTournamentNotFound
	}
	r.tournaments[t.ID] = *t
	return nil
}

func (r *fakeTournamentRepo) Delete(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tournaments[id]; !ok {
		return repositories.ErrTournamentNotFound
	}
	delete(r.tournaments, id)
	return nil
}

type fakeMatchRepo struct {
	mu          sync.Mutex
	matches     map[int]models.Match
	nextID      int
	updates     int
	softDeleted map[int]bool
}

func newFakeMatchRepo(ms ...models.Match) *fakeMatchRepo {
	r := &fakeMatchRepo{matches: map[int]models.Match{}, nextID: 1, softDeleted: map[int]bool{}}
	for _, m := range ms {
		r.matches[m.ID] = m
		if m.ID >= r.nextID {
			r.nextID = m.ID + 1
		}
	}
	return r
}

func (r *fakeMatchRepo) stored(id int) models.Match {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.matches[id]
}

func (r *fakeMatchRepo) Create(_ context.Context, _ repositories.SQLExecutor, m *models.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if m.HomeTeamID == m.AwayTeamID {
		return repositories.ErrMatchSameTeams
	}
	m.ID = r.nextID
	r.nextID++
	m.CreatedAt = time.Now()
	m.UpdatedAt = m.CreatedAt
	r.matches[m.ID] = *m
	return nil
}

func (r *fakeMatchRepo) get(id int) (*models.Match, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.matches[id]
	if !ok || r.softDeleted[id] {
		return nil, repositories.ErrMatchNotFound
	}
	return &m, nil
}

func (r *fakeMatchRepo) GetByID(_ context.Context, id int) (*models.Match, error) {
	return r.get(id)
}

func (r *fakeMatchRepo) GetByIDForUpdate(_ context.Context, _ repositories.SQLExecutor, id int) (*models.Match, error) {
	return r.get(id)
}

func (r *fakeMatchRepo) List(_ context.Context, filter repositories.MatchFilter, page models.Page) ([]*models.Match, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Match
	for id, m := range r.matches {
		if r.softDeleted[id] {
			continue
		}
		if filter.TournamentID != nil && m.TournamentID != *filter.TournamentID {
			continue
		}
		if filter.Status != nil && m.Status != *filter.Status {
			continue
		}
		if filter.TeamID != nil && !m.HasTeam(*filter.TeamID) {
			continue
		}
		m := m
		out = append(out, &m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, len(out), nil
}

func (r *fakeMatchRepo) Update(_ context.Context, _ repositories.SQLExecutor, m *models.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.matches[m.ID]; !ok || r.softDeleted[m.ID] {
		return repositories.ErrMatchNotFound
	}
	r.updates++
	m.UpdatedAt = time.Now()
	r.matches[m.ID] = *m
	return nil
}

func (r *fakeMatchRepo) SoftDelete(_ context.Context, _ repositories.SQLExecutor, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.matches[id]; !ok || r.softDeleted[id] {
		return repositories.ErrMatchNotFound
	}
	r.softDeleted[id] = true
	return nil
}

func (r *fakeMatchRepo) Delete(_ context.Context, _ repositories.SQLExecutor, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.matches[id]; !ok {
		return repositories.ErrMatchNotFound
	}
	delete(r.matches, id)
	return nil
}

type fakeEventRepo struct {
	mu      sync.Mutex
	events  map[int]models.MatchEvent
	deleted map[int]bool
	nextID  int
}

func newFakeEventRepo() *fakeEventRepo {
	return &fakeEventRepo{events: map[int]models.MatchEvent{}, deleted: map[int]bool{}, nextID: 1}
}

func (r *fakeEventRepo) Create(_ context.Context, _ repositories.SQLExecutor, e *models.MatchEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e.ID = r.nextID
	r.nextID++
	e.CreatedAt = time.Now()
	e.UpdatedAt = e.CreatedAt
	r.events[e.ID] = *e
	return nil
}

func (r *fakeEventRepo) GetByID(_ context.Context, _ repositories.SQLExecutor, id int) (*models.MatchEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok || r.deleted[id] {
		return nil, repositories.ErrMatchEventNotFound
	}
	return &e, nil
}

func (r *fakeEventRepo) ListByMatch(_ context.Context, matchID int) ([]*models.MatchEvent, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.MatchEvent
	for id, e := range r.events {
		if e.MatchID != matchID || r.deleted[id] {
			continue
		}
		e := e
		out = append(out, &e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *fakeEventRepo) CountByMatch(_ context.Context, _ repositories.SQLExecutor, matchID int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, e := range r.events {
		if e.MatchID == matchID {
			n++
		}
	}
	return n, nil
}

func (r *fakeEventRepo) Update(_ context.Context, _ repositories.SQLExecutor, e *models.MatchEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[e.ID]; !ok || r.deleted[e.ID] {
		return repositories.ErrMatchEventNotFound
	}
	r.events[e.ID] = *e
	return nil
}

func (r *fakeEventRepo) SoftDelete(_ context.Context, _ repositories.SQLExecutor, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.events[id]; !ok || r.deleted[id] {
		return repositories.ErrMatchEventNotFound
	}
	r.deleted[id] = true
	return nil
}

func (r *fakeEventRepo) UpdateVideoKey(_ context.Context, id int, videoKey *string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.events[id]
	if !ok || r.deleted[id] {
		return repositories.ErrMatchEventNotFound
	}
	e.VideoKey = videoKey
	r.events[id] = e
	return nil
}

type fakeNotificationRepo struct {
	mu        sync.Mutex
	items     []models.Notification
	emailSent map[int]bool
	createErr error
}

func newFakeNotificationRepo() *fakeNotificationRepo {
	return &fakeNotificationRepo{emailSent: map[int]bool{}}
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.createErr != nil {
		return r.createErr
	}
	n.ID = len(r.items) + 1
	n.CreatedAt = time.Now()
	r.items = append(r.items, *n)
	return nil
}

func (r *fakeNotificationRepo) ListByUser(_ context.Context, userID int, unreadOnly bool, _ models.Page) ([]*models.Notification, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*models.Notification
	for i := range r.items {
		n := r.items[i]
		if n.UserID != userID || (unreadOnly && n.IsRead) {
			continue
		}
		out = append(out, &n)
	}
	return out, len(out), nil
}

func (r *fakeNotificationRepo) MarkRead(_ context.Context, userID, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.items {
		if r.items[i].ID == id && r.items[i].UserID == userID {
			r.items[i].IsRead = true
			return nil
		}
	}
	return repositories.ErrNotificationNotFound
}

func (r *fakeNotificationRepo) MarkAllRead(_ context.Context, userID int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for i := range r.items {
		if r.items[i].UserID == userID && !r.items[i].IsRead {
			r.items[i].IsRead = true
			n++
		}
	}
	return n, nil
}

func (r *fakeNotificationRepo) MarkEmailSent(_ context.Context, id int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emailSent[id] = true
	return nil
}

// recordingSender синхронно запоминает уведомления вместо фоновой доставки.
type recordingSender struct {
	mu   sync.Mutex
	sent []*models.Notification
}

func (s *recordingSender) Send(_ context.Context, notifications ...*models.Notification) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sent = append(s.sent, notifications...)
}

func (s *recordingSender) ofType(typ models.NotificationType) []*models.Notification {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Notification
	for _, n := range s.sent {
		if n.Type == typ {
			out = append(out, n)
		}
	}
	return out
}

func recipients(ns []*models.Notification) []int {
	ids := make([]int, 0, len(ns))
	for _, n := range ns {
		ids = append(ids, n.UserID)
	}
	sort.Ints(ids)
	return ids
}

type recordingHub struct {
	mu       sync.Mutex
	messages map[string][]live.WebSocketMessage
}

func newRecordingHub() *recordingHub {
	return &recordingHub{messages: map[string][]live.WebSocketMessage{}}
}

func (h *recordingHub) BroadcastToRoom(roomID string, message live.WebSocketMessage) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages[roomID] = append(h.messages[roomID], message)
}

func (h *recordingHub) count(roomID, typ string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	n := 0
	for _, m := range h.messages[roomID] {
		if m.Type == typ {
			n++
		}
	}
	return n
}

type fakeUploader struct {
	mu       sync.Mutex
	objects  map[string]string
	deleted  []string
	failWith error
}

func newFakeUploader() *fakeUploader {
	return &fakeUploader{objects: map[string]string{}}
}

func (u *fakeUploader) Upload(_ context.Context, key, contentType string, reader io.Reader) (*storage.UploadResult, error) {
	if u.failWith != nil {
		return nil, u.failWith
	}
	if _, err := io.ReadAll(reader); err != nil {
		return nil, err
	}
	u.mu.Lock()
	defer u.mu.Unlock()
	u.objects[key] = contentType
	return &storage.UploadResult{Key: key, Location: u.GetPublicURL(key)}, nil
}

func (u *fakeUploader) Delete(_ context.Context, key string) error {
	u.mu.Lock()
	defer u.mu.Unlock()
	delete(u.objects, key)
	u.deleted = append(u.deleted, key)
	return nil
}

func (u *fakeUploader) GetPublicURL(key string) string {
	return "https://cdn.example.com/" + key
}
