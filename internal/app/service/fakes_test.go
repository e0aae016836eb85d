package service

import (
	"context"
	"database/sql"
	"time"

	"leetlab/internal/common"
	"leetlab/internal/domain/model"
	"leetlab/internal/domain/repository"
)

// In-memory repository fakes mirroring the constraint behavior of the
// Postgres implementations: duplicates surface UniqueViolationError, missing
// parents surface ForeignKeyViolationError, missing rows ErrNotFound.

type fakeUserRepo struct {
	users map[string]*model.User // by id
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*model.User{}}
}

var _ repository.UserRepository = (*fakeUserRepo)(nil)

func (f *fakeUserRepo) Create(ctx context.Context, user *model.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return &common.UniqueViolationError{Constraint: "users_email_key", Fields: []string{"email"}}
		}
	}
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if u, ok := f.users[id]; ok {
		cp := *u
		return &cp, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			cp := *u
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeUserRepo) Update(ctx context.Context, user *model.User) error {
	if _, ok := f.users[user.ID]; !ok {
		return common.ErrNotFound
	}
	user.UpdatedAt = time.Now()
	cp := *user
	f.users[user.ID] = &cp
	return nil
}

func (f *fakeUserRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.users[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.users, id)
	return nil
}

type fakeProblemRepo struct {
	problems map[string]*model.Problem
}

func newFakeProblemRepo() *fakeProblemRepo {
	return &fakeProblemRepo{problems: map[string]*model.Problem{}}
}

var _ repository.ProblemRepository = (*fakeProblemRepo)(nil)

func (f *fakeProblemRepo) CreateProblem(ctx context.Context, p *model.Problem) error {
	for _, existing := range f.problems {
		if existing.Slug == p.Slug {
			return &common.UniqueViolationError{Constraint: "problems_slug_key", Fields: []string{"slug"}}
		}
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	f.problems[p.ID] = &cp
	return nil
}

func (f *fakeProblemRepo) UpdateProblem(ctx context.Context, p *model.Problem) error {
	if _, ok := f.problems[p.ID]; !ok {
		return common.ErrNotFound
	}
	p.UpdatedAt = time.Now()
	cp := *p
	f.problems[p.ID] = &cp
	return nil
}

func (f *fakeProblemRepo) DeleteProblem(ctx context.Context, id string) error {
	if _, ok := f.problems[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.problems, id)
	return nil
}

func (f *fakeProblemRepo) FindProblemByID(ctx context.Context, id string) (*model.Problem, error) {
	if p, ok := f.problems[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeProblemRepo) FindProblemBySlug(ctx context.Context, slug string) (*model.Problem, error) {
	for _, p := range f.problems {
		if p.Slug == slug {
			cp := *p
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeProblemRepo) ListProblems(ctx context.Context, limit, offset int, difficulty model.ProblemDifficulty, tags []string) ([]model.Problem, int, error) {
	out := []model.Problem{}
	for _, p := range f.problems {
		if difficulty != "" && p.Difficulty != difficulty {
			continue
		}
		out = append(out, *p)
	}
	return out, len(out), nil
}

type fakePlaylistRepo struct {
	playlists     map[string]*model.Playlist
	entries       map[string]*model.ProblemInPlaylist // by id
	knownProblems map[string]bool
}

func newFakePlaylistRepo() *fakePlaylistRepo {
	return &fakePlaylistRepo{
		playlists:     map[string]*model.Playlist{},
		entries:       map[string]*model.ProblemInPlaylist{},
		knownProblems: map[string]bool{},
	}
}

var _ repository.PlaylistRepository = (*fakePlaylistRepo)(nil)

func (f *fakePlaylistRepo) CreatePlaylist(ctx context.Context, p *model.Playlist) error {
	for _, existing := range f.playlists {
		if existing.Name == p.Name && existing.UserID == p.UserID {
			return &common.UniqueViolationError{
				Constraint: "playlists_name_user_id_key",
				Fields:     []string{"name", "user_id"},
			}
		}
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = p.CreatedAt
	cp := *p
	f.playlists[p.ID] = &cp
	return nil
}

func (f *fakePlaylistRepo) GetPlaylistByID(ctx context.Context, id string) (*model.Playlist, error) {
	if p, ok := f.playlists[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakePlaylistRepo) ListPlaylistsByUser(ctx context.Context, userID string) ([]model.Playlist, error) {
	out := []model.Playlist{}
	for _, p := range f.playlists {
		if p.UserID == userID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakePlaylistRepo) DeletePlaylist(ctx context.Context, id string) error {
	if _, ok := f.playlists[id]; !ok {
		return common.ErrNotFound
	}
	delete(f.playlists, id)
	for entryID, e := range f.entries {
		if e.PlaylistID == id {
			delete(f.entries, entryID)
		}
	}
	return nil
}

func (f *fakePlaylistRepo) AddProblemToPlaylist(ctx context.Context, entry *model.ProblemInPlaylist) error {
	if !f.knownProblems[entry.ProblemID] {
		return &common.ForeignKeyViolationError{Constraint: "problems_in_playlists_problem_id_fkey"}
	}
	for _, e := range f.entries {
		if e.PlaylistID == entry.PlaylistID && e.ProblemID == entry.ProblemID {
			return &common.UniqueViolationError{
				Constraint: "problems_in_playlists_playlist_id_problem_id_key",
				Fields:     []string{"playlist_id", "problem_id"},
			}
		}
	}
	entry.CreatedAt = time.Now()
	entry.UpdatedAt = entry.CreatedAt
	cp := *entry
	f.entries[entry.ID] = &cp
	return nil
}

func (f *fakePlaylistRepo) RemoveProblemFromPlaylist(ctx context.Context, playlistID, problemID string) error {
	for id, e := range f.entries {
		if e.PlaylistID == playlistID && e.ProblemID == problemID {
			delete(f.entries, id)
			return nil
		}
	}
	return common.ErrNotFound
}

func (f *fakePlaylistRepo) GetPlaylistProblems(ctx context.Context, playlistID string) ([]model.Problem, error) {
	return []model.Problem{}, nil
}

type fakeSubmissionRepo struct {
	submissions map[string]*model.Submission
	results     map[string][]model.TestCaseResult // by submission id
	solved      map[string]bool                   // userID+"/"+problemID
}

func newFakeSubmissionRepo() *fakeSubmissionRepo {
	return &fakeSubmissionRepo{
		submissions: map[string]*model.Submission{},
		results:     map[string][]model.TestCaseResult{},
		solved:      map[string]bool{},
	}
}

var _ repository.SubmissionRepository = (*fakeSubmissionRepo)(nil)

func (f *fakeSubmissionRepo) CreateSubmission(ctx context.Context, tx *sql.Tx, sub *model.Submission) error {
	sub.CreatedAt = time.Now()
	sub.UpdatedAt = sub.CreatedAt
	cp := *sub
	f.submissions[sub.ID] = &cp
	return nil
}

func (f *fakeSubmissionRepo) GetSubmissionByID(ctx context.Context, id string) (*model.Submission, error) {
	if s, ok := f.submissions[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, common.ErrNotFound
}

func (f *fakeSubmissionRepo) UpdateSubmissionResult(ctx context.Context, tx *sql.Tx, sub *model.Submission) error {
	if _, ok := f.submissions[sub.ID]; !ok {
		return common.ErrNotFound
	}
	sub.UpdatedAt = time.Now()
	cp := *sub
	f.submissions[sub.ID] = &cp
	return nil
}

func (f *fakeSubmissionRepo) ListSubmissionsForUserProblem(ctx context.Context, userID, problemID string, limit, offset int) ([]model.Submission, int, error) {
	out := []model.Submission{}
	for _, s := range f.submissions {
		if s.UserID == userID && s.ProblemID == problemID {
			out = append(out, *s)
		}
	}
	return out, len(out), nil
}

func (f *fakeSubmissionRepo) CreateTestCaseResults(ctx context.Context, tx *sql.Tx, results []model.TestCaseResult) error {
	for _, r := range results {
		f.results[r.SubmissionID] = append(f.results[r.SubmissionID], r)
	}
	return nil
}

func (f *fakeSubmissionRepo) GetTestCaseResults(ctx context.Context, submissionID string) ([]model.TestCaseResult, error) {
	return f.results[submissionID], nil
}

func (f *fakeSubmissionRepo) MarkProblemSolved(ctx context.Context, tx *sql.Tx, solved *model.ProblemSolved) error {
	f.solved[solved.UserID+"/"+solved.ProblemID] = true
	return nil
}

func (f *fakeSubmissionRepo) ListSolvedProblems(ctx context.Context, userID string) ([]model.Problem, error) {
	return []model.Problem{}, nil
}

func (f *fakeSubmissionRepo) CountSolvedProblemsByUser(ctx context.Context, userID string) (int, error) {
	count := 0
	for key := range f.solved {
		if len(key) > len(userID) && key[:len(userID)] == userID && key[len(userID)] == '/' {
			count++
		}
	}
	return count, nil
}
