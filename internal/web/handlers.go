package web

import (
	"fmt"
	"net/http"
	"net/url"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/pustakahq/pustakactl/internal/auth"
	"github.com/pustakahq/pustakactl/internal/library"
)

// pageData carries everything a template may show. Msg and Err are one-shot
// notices passed through the redirect query string.
type pageData struct {
	Title string
	Msg   string
	Err   string

	Books    []library.Book
	HasCover map[int]bool

	Members []library.Member

	Loans          []library.Loan
	ActiveLoans    []library.Loan
	AvailableBooks []library.Book

	Entries []library.DeletionEntry
}

func newPageData(req *http.Request, title string) pageData {
	q := req.URL.Query()
	return pageData{Title: title, Msg: q.Get("msg"), Err: q.Get("err")}
}

func redirectMsg(w http.ResponseWriter, req *http.Request, path, msg string) {
	http.Redirect(w, req, path+"?msg="+url.QueryEscape(msg), http.StatusSeeOther)
}

func redirectErr(w http.ResponseWriter, req *http.Request, path string, err error) {
	http.Redirect(w, req, path+"?err="+url.QueryEscape(err.Error()), http.StatusSeeOther)
}

// --- auth ---

func (s *Server) handleLoginPage(w http.ResponseWriter, req *http.Request) {
	s.render(w, "login.html", newPageData(req, "Login"))
}

func (s *Server) handleLogin(w http.ResponseWriter, req *http.Request) {
	if !s.loginLimiter.Allow() {
		redirectErr(w, req, "/login", fmt.Errorf("too many attempts, wait a minute"))
		return
	}

	if !auth.Verify(req.FormValue("password"), s.passwordHash) {
		redirectErr(w, req, "/login", fmt.Errorf("wrong password"))
		return
	}

	token := s.sessions.Start()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, req, "/books", http.StatusSeeOther)
}

func (s *Server) handleLogout(w http.ResponseWriter, req *http.Request) {
	if cookie, err := req.Cookie(sessionCookie); err == nil {
		s.sessions.End(cookie.Value)
	}
	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Value: "", Path: "/", MaxAge: -1})
	http.Redirect(w, req, "/login", http.StatusSeeOther)
}

// --- books ---

func (s *Server) handleBooks(w http.ResponseWriter, req *http.Request) {
	books, err := s.lib.Catalog.Books()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	data := newPageData(req, "Books")
	data.Books = slices.Collect(books)
	data.HasCover = make(map[int]bool, len(data.Books))
	for _, b := range data.Books {
		data.HasCover[b.ID] = s.covers.Has(b.ID)
	}
	s.render(w, "books.html", data)
}

func (s *Server) handleAddBook(w http.ResponseWriter, req *http.Request) {
	// The form may or may not carry a cover file.
	if err := req.ParseMultipartForm(10 << 20); err != nil {
		if err := req.ParseForm(); err != nil {
			redirectErr(w, req, "/books", fmt.Errorf("reading form: %w", err))
			return
		}
	}

	year, err := strconv.Atoi(req.FormValue("year"))
	if err != nil {
		redirectErr(w, req, "/books", fmt.Errorf("year must be a number"))
		return
	}
	stock, err := strconv.Atoi(req.FormValue("stock"))
	if err != nil {
		redirectErr(w, req, "/books", fmt.Errorf("stock must be a number"))
		return
	}

	book, err := s.lib.Catalog.Add(library.NewBook{
		Title:        req.FormValue("title"),
		Author:       req.FormValue("author"),
		Publisher:    req.FormValue("publisher"),
		Year:         year,
		Stock:        stock,
		Funding:      library.FundingSource(req.FormValue("funding_source")),
		PurchaseDate: req.FormValue("purchase_date"),
		DonorName:    req.FormValue("donor_name"),
		DateReceived: req.FormValue("date_received"),
	})
	if err != nil {
		redirectErr(w, req, "/books", err)
		return
	}

	if file, _, err := req.FormFile("cover"); err == nil {
		defer file.Close()
		stored, err := s.covers.Save(book.ID, file)
		if err == nil {
			err = s.lib.Catalog.SetCoverImage(book.ID, stored)
		}
		if err != nil {
			redirectMsg(w, req, "/books",
				fmt.Sprintf("book %q added, but its cover was not saved: %v", book.Title, err))
			return
		}
	}

	redirectMsg(w, req, "/books", fmt.Sprintf("book %q added", book.Title))
}

func (s *Server) handleDeleteBook(w http.ResponseWriter, req *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(req, "id"))
	if err != nil {
		redirectErr(w, req, "/books", fmt.Errorf("book id must be a number"))
		return
	}

	if err := s.lib.Catalog.Delete(id, req.FormValue("reason")); err != nil {
		redirectErr(w, req, "/books", err)
		return
	}
	_ = s.covers.Remove(id)
	redirectMsg(w, req, "/books", fmt.Sprintf("book %d deleted, reason recorded", id))
}

func (s *Server) handleCover(w http.ResponseWriter, req *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(req, "id"))
	if err != nil || !s.covers.Has(id) {
		http.NotFound(w, req)
		return
	}
	http.ServeFile(w, req, s.covers.Path(id))
}

// --- members ---

func (s *Server) handleMembers(w http.ResponseWriter, req *http.Request) {
	members, err := s.lib.Members.Members()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	data := newPageData(req, "Members")
	data.Members = slices.Collect(members)
	s.render(w, "members.html", data)
}

func (s *Server) handleAddMember(w http.ResponseWriter, req *http.Request) {
	member, err := s.lib.Members.Add(
		req.FormValue("name"),
		req.FormValue("class"),
		req.FormValue("nis"),
	)
	if err != nil {
		redirectErr(w, req, "/members", err)
		return
	}
	redirectMsg(w, req, "/members", fmt.Sprintf("member %s registered", member.Name))
}

// --- loans ---

func (s *Server) handleLoans(w http.ResponseWriter, req *http.Request) {
	data := newPageData(req, "Loans")

	loans, err := s.lib.Loans.All()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	data.Loans = slices.Collect(loans)

	for _, l := range data.Loans {
		if l.Status == library.StatusActive {
			data.ActiveLoans = append(data.ActiveLoans, l)
		}
	}

	books, err := s.lib.Catalog.Books()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	for b := range books {
		if b.Stock > 0 {
			data.AvailableBooks = append(data.AvailableBooks, b)
		}
	}

	members, err := s.lib.Members.Members()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	data.Members = slices.Collect(members)

	s.render(w, "loans.html", data)
}

func (s *Server) handleBorrow(w http.ResponseWriter, req *http.Request) {
	bookID, err := strconv.Atoi(req.FormValue("book_id"))
	if err != nil {
		redirectErr(w, req, "/loans", fmt.Errorf("book id must be a number"))
		return
	}
	memberID, err := strconv.Atoi(req.FormValue("member_id"))
	if err != nil {
		redirectErr(w, req, "/loans", fmt.Errorf("member id must be a number"))
		return
	}

	loan, err := s.lib.Loans.Borrow(bookID, memberID)
	if err != nil {
		redirectErr(w, req, "/loans", err)
		return
	}
	redirectMsg(w, req, "/loans",
		fmt.Sprintf("%q issued to %s", loan.BookTitle, loan.MemberName))
}

func (s *Server) handleReturn(w http.ResponseWriter, req *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(req, "id"))
	if err != nil {
		redirectErr(w, req, "/loans", fmt.Errorf("loan id must be a number"))
		return
	}

	loan, err := s.lib.Loans.Return(id)
	if err != nil {
		redirectErr(w, req, "/loans", err)
		return
	}
	redirectMsg(w, req, "/loans",
		fmt.Sprintf("%q returned by %s", loan.BookTitle, loan.MemberName))
}

// --- audit ---

func (s *Server) handleAudit(w http.ResponseWriter, req *http.Request) {
	entries, err := s.lib.Audit.Entries()
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	data := newPageData(req, "Deletion log")
	data.Entries = slices.Collect(entries)
	s.render(w, "audit.html", data)
}
