package web_test

import (
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pustakahq/pustakactl/internal/auth"
	"github.com/pustakahq/pustakactl/internal/cover"
	"github.com/pustakahq/pustakactl/internal/library"
	"github.com/pustakahq/pustakactl/internal/web"
)

const testPassword = "admin123"

func newTestServer(t *testing.T) (*httptest.Server, *library.Library) {
	t.Helper()
	dir := t.TempDir()
	lib := library.Open(library.Paths{
		Books:       filepath.Join(dir, "books.json"),
		Members:     filepath.Join(dir, "members.json"),
		Loans:       filepath.Join(dir, "loans.json"),
		DeletionLog: filepath.Join(dir, "deletion_log.json"),
	})

	srv := web.NewServer(web.Options{
		Library:      lib,
		Covers:       cover.NewStore(filepath.Join(dir, "covers")),
		PasswordHash: auth.HashPassword(testPassword),
	})

	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts, lib
}

// client returns an http client that keeps cookies and does not follow
// redirects, so tests can assert on Location headers.
func client(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	return &http.Client{
		Jar: jar,
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

func login(t *testing.T, c *http.Client, baseURL, password string) *http.Response {
	t.Helper()
	resp, err := c.PostForm(baseURL+"/login", url.Values{"password": {password}})
	require.NoError(t, err)
	resp.Body.Close()
	return resp
}

func TestLoginRequired(t *testing.T) {
	ts, _ := newTestServer(t)
	c := client(t)

	resp, err := c.Get(ts.URL + "/books")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/login", resp.Header.Get("Location"))
}

func TestLogin_WrongPassword(t *testing.T) {
	ts, _ := newTestServer(t)
	c := client(t)

	resp := login(t, c, ts.URL, "nope")
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Contains(t, resp.Header.Get("Location"), "/login?err=")

	// Still locked out.
	books, err := c.Get(ts.URL + "/books")
	require.NoError(t, err)
	books.Body.Close()
	require.Equal(t, "/login", books.Header.Get("Location"))
}

func TestLogin_ThenBrowse(t *testing.T) {
	ts, _ := newTestServer(t)
	c := client(t)

	resp := login(t, c, ts.URL, testPassword)
	require.Equal(t, http.StatusSeeOther, resp.StatusCode)
	require.Equal(t, "/books", resp.Header.Get("Location"))

	books, err := c.Get(ts.URL + "/books")
	require.NoError(t, err)
	defer books.Body.Close()
	require.Equal(t, http.StatusOK, books.StatusCode)
}

func TestLogout(t *testing.T) {
	ts, _ := newTestServer(t)
	c := client(t)
	login(t, c, ts.URL, testPassword)

	resp, err := c.PostForm(ts.URL+"/logout", nil)
	require.NoError(t, err)
	resp.Body.Close()

	books, err := c.Get(ts.URL + "/books")
	require.NoError(t, err)
	books.Body.Close()
	require.Equal(t, "/login", books.Header.Get("Location"))
}

func TestAddBookAndDelete(t *testing.T) {
	ts, lib := newTestServer(t)
	c := client(t)
	login(t, c, ts.URL, testPassword)

	resp, err := c.PostForm(ts.URL+"/books", url.Values{
		"title": {"Laskar Pelangi"},
		"year":  {"2005"},
		"stock": {"2"},
	})
	require.NoError(t, err)
	resp.Body.Close()
	require.Contains(t, resp.Header.Get("Location"), "msg=")

	book, err := lib.Catalog.Get(1)
	require.NoError(t, err)
	require.Equal(t, "Laskar Pelangi", book.Title)
	require.Equal(t, 2, book.Stock)

	// Delete without a reason is refused.
	resp, err = c.PostForm(ts.URL+"/books/1/delete", url.Values{})
	require.NoError(t, err)
	resp.Body.Close()
	require.Contains(t, resp.Header.Get("Location"), "err=")
	_, err = lib.Catalog.Get(1)
	require.NoError(t, err)

	resp, err = c.PostForm(ts.URL+"/books/1/delete", url.Values{"reason": {"damaged"}})
	require.NoError(t, err)
	resp.Body.Close()
	_, err = lib.Catalog.Get(1)
	require.ErrorIs(t, err, library.ErrNotFound)
}

func TestBorrowAndReturnFlow(t *testing.T) {
	ts, lib := newTestServer(t)
	c := client(t)
	login(t, c, ts.URL, testPassword)

	book, err := lib.Catalog.Add(library.NewBook{Title: "Bumi Manusia", Stock: 1})
	require.NoError(t, err)
	member, err := lib.Members.Add("Ada", "10A", "2024001")
	require.NoError(t, err)

	resp, err := c.PostForm(ts.URL+"/loans", url.Values{
		"book_id":   {"1"},
		"member_id": {"1"},
	})
	require.NoError(t, err)
	resp.Body.Close()
	require.Contains(t, resp.Header.Get("Location"), "msg=")

	got, err := lib.Catalog.Get(book.ID)
	require.NoError(t, err)
	require.Equal(t, 0, got.Stock)

	// A second borrow finds the shelf empty.
	resp, err = c.PostForm(ts.URL+"/loans", url.Values{
		"book_id":   {"1"},
		"member_id": {"1"},
	})
	require.NoError(t, err)
	resp.Body.Close()
	loc := resp.Header.Get("Location")
	require.Contains(t, loc, "err=")
	require.Contains(t, errText(t, loc), "out of stock")

	resp, err = c.PostForm(ts.URL+"/loans/1/return", nil)
	require.NoError(t, err)
	resp.Body.Close()
	require.Contains(t, resp.Header.Get("Location"), "msg=")

	got, err = lib.Catalog.Get(book.ID)
	require.NoError(t, err)
	require.Equal(t, 1, got.Stock)

	history, err := lib.Loans.All()
	require.NoError(t, err)
	for loan := range history {
		require.Equal(t, member.Name, loan.MemberName)
		require.Equal(t, library.StatusReturned, loan.Status)
	}
}

func TestAddMember_DuplicateNIS(t *testing.T) {
	ts, _ := newTestServer(t)
	c := client(t)
	login(t, c, ts.URL, testPassword)

	form := url.Values{"name": {"Ada"}, "class": {"10A"}, "nis": {"7"}}
	resp, err := c.PostForm(ts.URL+"/members", form)
	require.NoError(t, err)
	resp.Body.Close()
	require.Contains(t, resp.Header.Get("Location"), "msg=")

	resp, err = c.PostForm(ts.URL+"/members", form)
	require.NoError(t, err)
	resp.Body.Close()
	require.Contains(t, resp.Header.Get("Location"), "err=")
}

// errText decodes the err query parameter from a redirect location.
func errText(t *testing.T, location string) string {
	t.Helper()
	u, err := url.Parse(location)
	require.NoError(t, err)
	return u.Query().Get("err")
}
