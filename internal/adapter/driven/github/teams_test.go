package github_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericfisherdev/repofleet/internal/domain/model"
)

// teamServer fakes the org teams API: create, fetch by slug, and add
// membership. It tracks state so ensure semantics can be asserted across
// repeated calls.
type teamServer struct {
	mu         sync.Mutex
	nextID     int64
	teams      map[string]int64 // name -> id
	members    map[string][]string
	creates    int
	failMember string // membership PUTs for this login return 404
}

func newTeamServer() *teamServer {
	return &teamServer{nextID: 1, teams: map[string]int64{}, members: map[string][]string{}}
}

func (s *teamServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case r.Method == http.MethodPost && r.URL.Path == "/orgs/"+testOrg+"/teams":
		var body struct {
			Name string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.creates++
		if _, ok := s.teams[body.Name]; ok {
			writeError(w, http.StatusUnprocessableEntity, "Name must be unique")
			return
		}
		s.teams[body.Name] = s.nextID
		s.nextID++
		w.WriteHeader(http.StatusCreated)
		fmt.Fprintf(w, `{"id": %d, "name": %q, "slug": %q}`, s.teams[body.Name], body.Name, strings.ToLower(body.Name))

	case r.Method == http.MethodGet && strings.HasPrefix(r.URL.Path, "/orgs/"+testOrg+"/teams/"):
		slug := strings.TrimPrefix(r.URL.Path, "/orgs/"+testOrg+"/teams/")
		id, ok := s.teams[slug]
		if !ok {
			writeError(w, http.StatusNotFound, "Not Found")
			return
		}
		fmt.Fprintf(w, `{"id": %d, "name": %q, "slug": %q}`, id, slug, slug)

	case r.Method == http.MethodPut && strings.Contains(r.URL.Path, "/memberships/"):
		parts := strings.Split(r.URL.Path, "/")
		user := parts[len(parts)-1]
		slug := parts[len(parts)-3]
		if user == s.failMember {
			writeError(w, http.StatusNotFound, "Not Found")
			return
		}
		s.members[slug] = append(s.members[slug], user)
		fmt.Fprintf(w, `{"state": "active", "role": "member"}`)

	default:
		writeError(w, http.StatusNotFound, "unexpected request "+r.Method+" "+r.URL.Path)
	}
}

func TestEnsureTeamsAndMembers_CreatesTeamsAndAddsMembers(t *testing.T) {
	server := newTeamServer()
	client, _ := newTestClient(t, server)

	teams := []model.StudentTeam{
		{Name: "a", Members: []string{"a"}},
		{Name: "b", Members: []string{"b"}},
		{Name: "ham-spam", Members: []string{"ham", "spam"}},
	}

	ensured, err := client.EnsureTeamsAndMembers(t.Context(), teams)

	require.NoError(t, err)
	require.Len(t, ensured, 3)
	// Input order is preserved.
	assert.Equal(t, "a", ensured[0].Name)
	assert.Equal(t, "b", ensured[1].Name)
	assert.Equal(t, "ham-spam", ensured[2].Name)
	for _, team := range ensured {
		assert.NotZero(t, team.ID)
	}
	assert.ElementsMatch(t, []string{"ham", "spam"}, server.members["ham-spam"])
}

func TestEnsureTeamsAndMembers_ExistingTeamKeepsItsID(t *testing.T) {
	server := newTeamServer()
	client, _ := newTestClient(t, server)

	teams := []model.StudentTeam{{Name: "a", Members: []string{"a"}}}

	first, err := client.EnsureTeamsAndMembers(t.Context(), teams)
	require.NoError(t, err)

	// Re-running must not raise and must resolve to the same platform team.
	second, err := client.EnsureTeamsAndMembers(t.Context(), teams)
	require.NoError(t, err)

	require.Len(t, second, 1)
	assert.Equal(t, first[0].ID, second[0].ID)
	assert.Equal(t, 2, server.creates, "second run attempts creation, then falls back to fetch")
}

func TestEnsureTeamsAndMembers_AddingExistingMemberIsNoop(t *testing.T) {
	server := newTeamServer()
	client, _ := newTestClient(t, server)

	teams := []model.StudentTeam{{Name: "a", Members: []string{"a"}}}

	_, err := client.EnsureTeamsAndMembers(t.Context(), teams)
	require.NoError(t, err)
	_, err = client.EnsureTeamsAndMembers(t.Context(), teams)
	require.NoError(t, err)
}

func TestEnsureTeamsAndMembers_MembersReflectSuccessfulAddsOnly(t *testing.T) {
	server := newTeamServer()
	server.failMember = "ghost"
	client, _ := newTestClient(t, server)

	teams := []model.StudentTeam{{Name: "ghost-ham", Members: []string{"ghost", "ham"}}}

	ensured, err := client.EnsureTeamsAndMembers(t.Context(), teams)

	// The failed add is reported, but the team itself was provisioned.
	require.Error(t, err)
	require.Len(t, ensured, 1)
	assert.Equal(t, []string{"ham"}, ensured[0].Members)
	assert.Equal(t, []string{"ham"}, server.members["ghost-ham"])
}

func TestEnsureTeamsAndMembers_FailureDoesNotAbortRemainingTeams(t *testing.T) {
	server := newTeamServer()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			data, err := io.ReadAll(r.Body)
			require.NoError(t, err)
			if strings.Contains(string(data), `"boom"`) {
				writeError(w, http.StatusInternalServerError, "server on fire")
				return
			}
			r.Body = io.NopCloser(bytes.NewReader(data))
		}
		server.ServeHTTP(w, r)
	})

	client, _ := newTestClient(t, handler)

	teams := []model.StudentTeam{
		{Name: "boom", Members: []string{"boom"}},
		{Name: "a", Members: []string{"a"}},
	}

	ensured, err := client.EnsureTeamsAndMembers(t.Context(), teams)

	require.Error(t, err)
	require.Len(t, ensured, 1)
	assert.Equal(t, "a", ensured[0].Name)
}
