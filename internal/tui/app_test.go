package tui

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/jask/avatardeck/internal/avatar"
	"github.com/jask/avatardeck/internal/reqres"
)

type stubSource struct {
	records []avatar.Record
	err     error
	calls   int
}

func (s *stubSource) FetchAvatars(ctx context.Context, page, limit int) ([]avatar.Record, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := s.records
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

var seedRecords = []avatar.Record{
	{ID: 1, FirstName: "George", LastName: "Bluth", AvatarURL: "https://reqres.in/img/faces/1-image.jpg"},
	{ID: 2, FirstName: "Janet", LastName: "Weaver", AvatarURL: "https://reqres.in/img/faces/2-image.jpg"},
	{ID: 3, FirstName: "Emma", LastName: "Wong", AvatarURL: "https://reqres.in/img/faces/3-image.jpg"},
}

func fixedNow() time.Time { return time.UnixMilli(1760000000000) }

// loadedApp runs the initial load against src and applies the result.
func loadedApp(t *testing.T, src Source) *App {
	t.Helper()
	a := New(context.Background(), src, nil, Options{Now: fixedNow})
	cmd := a.Init()
	require.NotNil(t, cmd)
	a.Update(cmd())
	return a
}

func keyMsg(k string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
}

func press(t *testing.T, a *App, msgs ...tea.Msg) {
	t.Helper()
	for _, m := range msgs {
		next, _ := a.Update(m)
		require.Same(t, a, next)
	}
}

func TestInitialLoadKeepsFirstThreeFromSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		var items []string
		for i := 1; i <= 6; i++ {
			items = append(items, fmt.Sprintf(`{"id":%d,"email":"u%d@reqres.in","first_name":"First%d","last_name":"Last%d","avatar":"https://reqres.in/img/faces/%d-image.jpg"}`, i, i, i, i, i))
		}
		fmt.Fprintf(w, `{"page":1,"data":[%s]}`, strings.Join(items, ","))
	}))
	t.Cleanup(srv.Close)

	a := loadedApp(t, reqres.NewClient(srv.URL, time.Second, nil))
	got := a.Records()
	require.Len(t, got, 3)
	for i, rec := range got {
		n := i + 1
		require.Equal(t, avatar.Record{
			ID:        int64(n),
			FirstName: fmt.Sprintf("First%d", n),
			LastName:  fmt.Sprintf("Last%d", n),
			AvatarURL: fmt.Sprintf("https://reqres.in/img/faces/%d-image.jpg", n),
		}, rec)
	}
	view := a.View()
	require.Contains(t, view, "First1 Last1")
	require.Contains(t, view, "First3 Last3")
	require.NotContains(t, view, "First4")
	require.NotContains(t, view, emptyMessage)
}

func TestEmptyFetchShowsEmptyState(t *testing.T) {
	src := &stubSource{}
	a := loadedApp(t, src)
	require.Equal(t, 1, src.calls)
	require.Empty(t, a.Records())
	view := a.View()
	require.Contains(t, view, emptyMessage)
	require.NotContains(t, view, loadFailed)
	require.Contains(t, view, "New avatar")
}

func TestFailedFetchShowsEmptyState(t *testing.T) {
	a := loadedApp(t, &stubSource{err: errors.New("dial tcp: no route to host")})
	require.Empty(t, a.Records())
	view := a.View()
	require.Contains(t, view, emptyMessage)
	require.Contains(t, view, loadFailed)
}

func TestLoadAfterCloseIsDropped(t *testing.T) {
	a := New(context.Background(), &stubSource{records: seedRecords}, nil, Options{})
	cmd := a.Init()
	a.Close()
	a.Update(avatarsLoadedMsg{records: seedRecords})
	require.Empty(t, a.Records())

	msg := cmd()
	loaded, ok := msg.(avatarsLoadedMsg)
	require.True(t, ok)
	require.ErrorIs(t, loaded.err, context.Canceled)
}

func TestLoadKeepsRecordsAddedWhilePending(t *testing.T) {
	a := New(context.Background(), &stubSource{records: seedRecords}, nil, Options{Now: fixedNow})
	cmd := a.Init()
	require.NotNil(t, cmd)

	a.OpenCreateDialog()
	a.nameInput.SetValue("Jane Doe")
	a.Submit()
	require.NoError(t, a.formErr)
	require.Len(t, a.Records(), 1)
	require.Equal(t, 0, a.cursor)

	press(t, a, cmd())
	got := a.Records()
	require.Len(t, got, 4)
	require.Equal(t, seedRecords, got[:3])
	require.Equal(t, "Jane", got[3].FirstName)
	require.Equal(t, "Doe", got[3].LastName)
	require.Equal(t, fixedNow().UnixMilli(), got[3].ID)
	require.Equal(t, 3, a.cursor)
}

func TestParentCancelDropsLoad(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	a := New(ctx, &stubSource{records: seedRecords}, nil, Options{})
	cmd := a.Init()
	cancel()

	press(t, a, cmd())
	require.Empty(t, a.Records())
	require.Nil(t, a.loadErr)
}

func TestQuitCancelsLoad(t *testing.T) {
	a := New(context.Background(), &stubSource{records: seedRecords}, nil, Options{})
	_, cmd := a.Update(keyMsg("q"))
	require.NotNil(t, cmd)
	_, ok := cmd().(tea.QuitMsg)
	require.True(t, ok)
	require.Error(t, a.ctx.Err())
}

func TestCreateAppendsWithPlaceholder(t *testing.T) {
	a := loadedApp(t, &stubSource{records: seedRecords})

	press(t, a, keyMsg("n"))
	require.True(t, a.ModalOpen())
	require.False(t, a.EditMode())
	require.Contains(t, a.View(), "Create New Avatar")

	press(t, a, keyMsg("Jane Doe"), tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, a.ModalOpen())

	got := a.Records()
	require.Len(t, got, 4)
	require.Equal(t, seedRecords, got[:3])
	require.Equal(t, avatar.Record{
		ID:        fixedNow().UnixMilli(),
		FirstName: "Jane",
		LastName:  "Doe",
		AvatarURL: avatar.PlaceholderURL,
	}, got[3])
	require.Equal(t, "", a.nameInput.Value())
	require.Equal(t, "", a.imageInput.Value())
	require.Equal(t, 3, a.cursor)
}

func TestCreateSingleToken(t *testing.T) {
	a := loadedApp(t, &stubSource{records: seedRecords})

	a.OpenCreateDialog()
	a.nameInput.SetValue("Prince")
	a.Submit()
	require.NoError(t, a.formErr)

	got := a.Records()
	require.Equal(t, "Prince", got[3].FirstName)
	require.Equal(t, "", got[3].LastName)
}

func TestCreateWithImageViaTab(t *testing.T) {
	a := loadedApp(t, &stubSource{})

	press(t, a,
		keyMsg("+"),
		keyMsg("Ada Lovelace"),
		tea.KeyMsg{Type: tea.KeyTab},
		keyMsg("https://example.com/ada.png"),
		tea.KeyMsg{Type: tea.KeyEnter},
	)
	got := a.Records()
	require.Len(t, got, 1)
	require.Equal(t, "https://example.com/ada.png", got[0].AvatarURL)
}

func TestBlankNameKeepsDialogOpen(t *testing.T) {
	a := loadedApp(t, &stubSource{records: seedRecords})

	press(t, a, keyMsg("n"), tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, a.ModalOpen())
	require.Len(t, a.Records(), 3)
	require.Contains(t, a.View(), "Full name is required")
}

func TestInvalidImageURLRejected(t *testing.T) {
	a := loadedApp(t, &stubSource{records: seedRecords})

	a.OpenCreateDialog()
	a.nameInput.SetValue("Jane Doe")
	a.imageInput.SetValue("not a url")
	a.Submit()
	require.ErrorIs(t, a.formErr, avatar.ErrInvalidImageURL)
	require.True(t, a.ModalOpen())
	require.Len(t, a.Records(), 3)
	require.Contains(t, a.View(), "Image URL must be an http(s) URL")
}

func TestEditReplacesInPlace(t *testing.T) {
	a := loadedApp(t, &stubSource{records: seedRecords})

	press(t, a, keyMsg("l"), keyMsg("e"))
	require.True(t, a.ModalOpen())
	require.True(t, a.EditMode())
	require.Equal(t, "Janet Weaver", a.nameInput.Value())
	require.Equal(t, seedRecords[1].AvatarURL, a.imageInput.Value())
	require.Contains(t, a.View(), "Edit Avatar")

	a.nameInput.SetValue("New Name X")
	press(t, a, tea.KeyMsg{Type: tea.KeyEnter})
	require.False(t, a.ModalOpen())
	require.False(t, a.EditMode())

	got := a.Records()
	require.Len(t, got, 3)
	require.Equal(t, seedRecords[0], got[0])
	require.Equal(t, avatar.Record{ID: 2, FirstName: "New", LastName: "Name X", AvatarURL: seedRecords[1].AvatarURL}, got[1])
	require.Equal(t, seedRecords[2], got[2])
}

func TestEditVanishedRecordIsNoop(t *testing.T) {
	a := loadedApp(t, &stubSource{records: seedRecords})

	a.OpenEditDialog(seedRecords[2])
	a.roster.Reset(seedRecords[:2])
	before := a.Records()

	a.nameInput.SetValue("Someone Else")
	a.Submit()
	require.NoError(t, a.formErr)
	require.Equal(t, before, a.Records())
	require.False(t, a.ModalOpen())
}

func TestCloseNeverMutates(t *testing.T) {
	a := loadedApp(t, &stubSource{records: seedRecords})

	a.OpenEditDialog(seedRecords[0])
	a.nameInput.SetValue("Changed Name")
	press(t, a, tea.KeyMsg{Type: tea.KeyEsc})
	require.False(t, a.ModalOpen())
	require.Equal(t, seedRecords, a.Records())
	require.Equal(t, "Changed Name", a.nameInput.Value())

	press(t, a, keyMsg("n"), keyMsg("Draft"), tea.KeyMsg{Type: tea.KeyEsc})
	require.Equal(t, seedRecords, a.Records())
}

func TestRepeatedOpenCloseKeepsLength(t *testing.T) {
	a := loadedApp(t, &stubSource{records: seedRecords})

	for i := 0; i < 10; i++ {
		press(t, a, keyMsg("n"))
		require.True(t, a.ModalOpen())
		require.Equal(t, "", a.nameInput.Value())
		press(t, a, tea.KeyMsg{Type: tea.KeyEsc})
		require.Len(t, a.Records(), 3)
	}
}

func TestCreateAfterEditClearsEditMode(t *testing.T) {
	a := loadedApp(t, &stubSource{records: seedRecords})

	a.OpenEditDialog(seedRecords[0])
	a.CloseDialog()
	press(t, a, keyMsg("n"))
	require.False(t, a.EditMode())
	a.nameInput.SetValue("Fresh Face")
	a.Submit()
	require.NoError(t, a.formErr)
	require.Len(t, a.Records(), 4)
	require.Equal(t, seedRecords[0], a.Records()[0])
}

func TestCursorMovesAcrossGrid(t *testing.T) {
	a := loadedApp(t, &stubSource{records: seedRecords})
	press(t, a, tea.WindowSizeMsg{Width: 70, Height: 40})
	require.Equal(t, 2, columnsFor(a.width))

	press(t, a, keyMsg("j"))
	require.Equal(t, 2, a.cursor)
	press(t, a, keyMsg("j"))
	require.Equal(t, 2, a.cursor)
	press(t, a, keyMsg("h"), keyMsg("k"))
	require.Equal(t, 1, a.cursor)
	press(t, a, keyMsg("h"), keyMsg("h"))
	require.Equal(t, 0, a.cursor)
}

func TestEditOnEmptyListDoesNothing(t *testing.T) {
	a := loadedApp(t, &stubSource{})
	press(t, a, keyMsg("e"))
	require.False(t, a.ModalOpen())
}

func TestColumnsFor(t *testing.T) {
	require.Equal(t, 1, columnsFor(40))
	require.Equal(t, 2, columnsFor(60))
	require.Equal(t, 2, columnsFor(95))
	require.Equal(t, 3, columnsFor(96))
}

func TestDialogOverlaysPageWhenSized(t *testing.T) {
	a := loadedApp(t, &stubSource{records: seedRecords})
	press(t, a, tea.WindowSizeMsg{Width: 100, Height: 30}, keyMsg("n"))

	view := a.View()
	lines := strings.Split(view, "\n")
	require.Len(t, lines, 30)
	require.Contains(t, view, "Create New Avatar")
	require.Contains(t, view, "Welcome back, Admin!")
}

func TestInitials(t *testing.T) {
	require.Equal(t, "JD", initials(avatar.Record{FirstName: "jane", LastName: "doe"}))
	require.Equal(t, "P", initials(avatar.Record{FirstName: "Prince"}))
	require.Equal(t, "?", initials(avatar.Record{}))
}
