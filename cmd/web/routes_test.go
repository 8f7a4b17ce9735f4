package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"testing"

	"github.com/AdamBeresnev/esports-tracker/internal/config"
	"github.com/AdamBeresnev/esports-tracker/internal/db"
	"github.com/AdamBeresnev/esports-tracker/internal/esports"
	"github.com/alexedwards/scs/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClient struct {
	t       *testing.T
	baseURL string
	client  *http.Client
}

func newTestClient(t *testing.T) *testClient {
	t.Helper()

	database, err := db.Open(config.DriverSQLite, "file::memory:?_foreign_keys=on")
	require.NoError(t, err)
	database.SetMaxOpenConns(1)
	require.NoError(t, db.RunMigrations(database))

	server := httptest.NewServer(newRouter(scs.New(), database))
	t.Cleanup(func() {
		server.Close()
		database.Close()
	})

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &testClient{t: t, baseURL: server.URL, client: &http.Client{Jar: jar}}
}

// do sends body as JSON and decodes a JSON response into out when it is non-nil.
func (c *testClient) do(method, path string, body any, out any) int {
	c.t.Helper()

	var reader bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&reader).Encode(body))
	}
	req, err := http.NewRequest(method, c.baseURL+path, &reader)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 && resp.StatusCode != http.StatusNoContent {
		require.NoError(c.t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (c *testClient) setup() (tournament esports.Tournament, alpha, bravo esports.Team) {
	c.t.Helper()

	var user esports.User
	require.Equal(c.t, http.StatusCreated, c.do(http.MethodPost, "/users", map[string]string{"name": "Org", "email": "org@example.com", "role": "organizer"}, &user))
	require.Equal(c.t, http.StatusOK, c.do(http.MethodPost, "/session", map[string]any{"user_id": user.ID}, nil))

	var game esports.Game
	require.Equal(c.t, http.StatusCreated, c.do(http.MethodPost, "/games", map[string]string{"title": "Valorant", "genre": "FPS"}, &game))

	require.Equal(c.t, http.StatusCreated, c.do(http.MethodPost, "/tournaments", map[string]any{
		"name":       "Masters",
		"game_id":    game.ID,
		"start_date": "2025-06-01",
		"end_date":   "2025-06-03",
		"prize_pool": 2500,
	}, &tournament))

	require.Equal(c.t, http.StatusCreated, c.do(http.MethodPost, "/teams", map[string]string{"name": "Alpha", "game_tag": "org"}, &alpha))
	require.Equal(c.t, http.StatusCreated, c.do(http.MethodPost, "/teams", map[string]string{"name": "Bravo"}, &bravo))

	for _, team := range []esports.Team{alpha, bravo} {
		var registration struct {
			ID uuid.UUID `json:"id"`
		}
		require.Equal(c.t, http.StatusCreated, c.do(http.MethodPost, "/tournaments/"+tournament.ID.String()+"/registrations", map[string]any{"team_id": team.ID}, &registration))
		require.Equal(c.t, http.StatusNoContent, c.do(http.MethodPatch, "/registrations/"+registration.ID.String(), map[string]string{"status": "confirmed"}, nil))
	}
	return tournament, alpha, bravo
}

func TestRecordMatchAndLeaderboard(t *testing.T) {
	c := newTestClient(t)
	tournament, alpha, bravo := c.setup()

	var match esports.MatchDetails
	status := c.do(http.MethodPost, "/matches", map[string]any{
		"tournament_id": tournament.ID,
		"team_a_id":     alpha.ID,
		"team_b_id":     bravo.ID,
		"score_a":       16,
		"score_b":       12,
		"round_number":  1,
	}, &match)
	require.Equal(t, http.StatusCreated, status)
	require.NotNil(t, match.WinnerID)
	assert.Equal(t, alpha.ID, *match.WinnerID)
	assert.Len(t, match.Scores, 2)

	var leaderboard []esports.LeaderboardEntry
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/tournaments/"+tournament.ID.String()+"/leaderboard", nil, &leaderboard))
	require.Len(t, leaderboard, 2)
	assert.Equal(t, "Alpha", leaderboard[0].TeamName)
	assert.Equal(t, 1, leaderboard[0].Rank)
	assert.Equal(t, 16.0, leaderboard[0].AvgScore)

	var summary esports.TeamSummary
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/teams/"+bravo.ID.String()+"/summary", nil, &summary))
	assert.Equal(t, 1, summary.TotalLosses)
	assert.Equal(t, 0.0, summary.WinLossRatio)

	var details esports.TeamDetails
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/teams/"+alpha.ID.String(), nil, &details))
	assert.Equal(t, "Org", details.CaptainName)
	require.Len(t, details.Roster, 1)
	assert.Equal(t, "org@example.com", details.Roster[0].Email)
	assert.Equal(t, 1, details.Summary.TotalWins)
	require.Len(t, details.Tournaments, 1)
	assert.Equal(t, "Valorant", details.Tournaments[0].Game)
	assert.Equal(t, 1, details.Tournaments[0].Wins)

	var roster []esports.RosterEntry
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/teams/"+alpha.ID.String()+"/players", nil, &roster))
	require.Len(t, roster, 1)
	assert.Equal(t, "Org", roster[0].Name)
	assert.Equal(t, "org", roster[0].GameTag)

	var listings []esports.TournamentListing
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/tournaments?status=upcoming", nil, &listings))
	require.Len(t, listings, 1)
	assert.Equal(t, 2, listings[0].TeamCount)
	assert.Equal(t, "Valorant", listings[0].GameTitle)

	var overview esports.Overview
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/stats/overview", nil, &overview))
	require.Len(t, overview.Upcoming, 1)
	assert.Equal(t, tournament.ID, overview.Upcoming[0].ID)
	assert.Empty(t, overview.Ongoing)
	require.Len(t, overview.TopTeams, 2)
	assert.Equal(t, "Alpha", overview.TopTeams[0].TeamName)

	var top []esports.TopTeam
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/stats/top-teams?limit=1", nil, &top))
	require.Len(t, top, 1)
	assert.Equal(t, "Alpha", top[0].TeamName)

	var matches []esports.MatchResult
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/matches?team_id="+bravo.ID.String(), nil, &matches))
	require.Len(t, matches, 1)
	require.NotNil(t, matches[0].ScoreB)
	assert.Equal(t, 12, *matches[0].ScoreB)
}

func TestScheduledMatchLifecycle(t *testing.T) {
	c := newTestClient(t)
	tournament, alpha, bravo := c.setup()

	var match esports.MatchDetails
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/matches/scheduled", map[string]any{
		"tournament_id": tournament.ID,
		"team_a_id":     alpha.ID,
		"team_b_id":     bravo.ID,
		"match_time":    "2025-06-02T18:00:00Z",
		"round_number":  2,
	}, &match))
	assert.Equal(t, esports.MatchScheduled, match.Status)
	assert.Empty(t, match.Scores)

	path := "/matches/" + match.ID.String()
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, path+"/result", map[string]int{"score_a": 3, "score_b": 3}, &match))
	assert.Equal(t, esports.MatchCompleted, match.Status)
	assert.Nil(t, match.WinnerID)
	assert.Len(t, match.Scores, 2)

	assert.Equal(t, http.StatusConflict, c.do(http.MethodPost, path+"/cancel", nil, nil))
	assert.Equal(t, http.StatusNotFound, c.do(http.MethodPost, "/matches/"+uuid.NewString()+"/cancel", nil, nil))
}

func TestSession(t *testing.T) {
	c := newTestClient(t)
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/session", nil, nil))

	var user esports.User
	require.Equal(t, http.StatusCreated, c.do(http.MethodPost, "/users", map[string]string{"name": "Ana", "email": "ana@example.com"}, &user))
	require.Equal(t, http.StatusOK, c.do(http.MethodPost, "/session", map[string]any{"user_id": user.ID}, nil))

	var acting esports.User
	require.Equal(t, http.StatusOK, c.do(http.MethodGet, "/session", nil, &acting))
	assert.Equal(t, user.ID, acting.ID)
	assert.Equal(t, esports.RolePlayer, acting.Role)

	require.Equal(t, http.StatusNoContent, c.do(http.MethodDelete, "/session", nil, nil))
	assert.Equal(t, http.StatusUnauthorized, c.do(http.MethodGet, "/session", nil, nil))
}

func TestErrorResponses(t *testing.T) {
	c := newTestClient(t)

	status := c.do(http.MethodPost, "/teams", map[string]string{"name": "Orphans"}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	tournament, alpha, bravo := c.setup()

	testCases := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
	}{
		{
			name:       "self play",
			method:     http.MethodPost,
			path:       "/matches",
			body:       map[string]any{"tournament_id": tournament.ID, "team_a_id": alpha.ID, "team_b_id": alpha.ID, "score_a": 1, "score_b": 0},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "negative score",
			method:     http.MethodPost,
			path:       "/matches",
			body:       map[string]any{"tournament_id": tournament.ID, "team_a_id": alpha.ID, "team_b_id": bravo.ID, "score_a": -1, "score_b": 0},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "duplicate registration",
			method:     http.MethodPost,
			path:       "/tournaments/" + tournament.ID.String() + "/registrations",
			body:       map[string]any{"team_id": alpha.ID},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "duplicate team name",
			method:     http.MethodPost,
			path:       "/teams",
			body:       map[string]string{"name": "Alpha"},
			wantStatus: http.StatusConflict,
		},
		{
			name:       "unknown tournament leaderboard",
			method:     http.MethodGet,
			path:       "/tournaments/" + uuid.NewString() + "/leaderboard",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "malformed id",
			method:     http.MethodGet,
			path:       "/teams/not-a-uuid",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "missing tournament fields",
			method:     http.MethodPost,
			path:       "/tournaments",
			body:       map[string]any{"name": "X"},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown team details",
			method:     http.MethodGet,
			path:       "/teams/" + uuid.NewString(),
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "unknown team roster",
			method:     http.MethodGet,
			path:       "/teams/" + uuid.NewString() + "/players",
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "malformed overview limit",
			method:     http.MethodGet,
			path:       "/stats/overview?limit=five",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown status filter",
			method:     http.MethodGet,
			path:       "/tournaments?status=paused",
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "unknown body field",
			method:     http.MethodPost,
			path:       "/games",
			body:       map[string]string{"title": "Dota 2", "publisher": "Valve"},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.wantStatus, c.do(tc.method, tc.path, tc.body, nil))
		})
	}
}
