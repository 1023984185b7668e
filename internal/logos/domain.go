package logos

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var domainBlocklist = []string{
	"linkedin.com",
	"indeed.com",
	"glassdoor.com",
	"ziprecruiter.com",
	"monster.com",
	"careerbuilder.com",
	"simplyhired.com",
	"builtin.com",
	"levels.fyi",
	"crunchbase.com",
	"wikipedia.org",

	// ATS / job boards
	"greenhouse.io",
	"lever.co",
	"myworkdayjobs.com",
	"workday.com",
	"smartrecruiters.com",
	"icims.com",
	"jobvite.com",
	"applytojob.com",
}

// mail providers say nothing about the employer
var freemail = map[string]bool{
	"gmail.com":      true,
	"googlemail.com": true,
	"outlook.com":    true,
	"hotmail.com":    true,
	"live.com":       true,
	"yahoo.com":      true,
	"icloud.com":     true,
	"me.com":         true,
	"aol.com":        true,
	"proton.me":      true,
	"protonmail.com": true,
}

// DomainFromEmail returns the employer domain of a contact address, or "" for
// free mail providers and malformed input.
func DomainFromEmail(email string) string {
	email = strings.TrimSpace(strings.ToLower(email))
	at := strings.LastIndexByte(email, '@')
	if at < 0 || at == len(email)-1 {
		return ""
	}
	d := strings.TrimPrefix(email[at+1:], "www.")
	if !strings.Contains(d, ".") || freemail[d] || isBlockedDomain(d) {
		return ""
	}
	return d
}

// findCompanyDomain searches the DuckDuckGo HTML endpoint and returns the
// first result host that is not a job board.
func (r *Resolver) findCompanyDomain(ctx context.Context, company string) (string, error) {
	company = strings.TrimSpace(company)
	if company == "" {
		return "", nil
	}

	query := fmt.Sprintf("%s official website", sanitizeCompanyForSearch(company))
	u := r.SearchURL + "?q=" + url.QueryEscape(query)

	resp, err := r.get(ctx, u)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("search %s: %s", company, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", err
	}

	var best string

	// DDG HTML results: <a class="result__a" href="...">
	doc.Find("a.result__a").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		href, ok := a.Attr("href")
		if !ok || strings.TrimSpace(href) == "" {
			return true
		}

		host := hostFromURL(decodeDDGRedirect(href))
		if host == "" {
			return true
		}

		host = strings.ToLower(strings.TrimPrefix(host, "www."))
		if isBlockedDomain(host) {
			return true
		}

		best = host
		return false // stop at first good domain
	})

	return best, nil
}

func decodeDDGRedirect(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return href
	}
	// DDG sometimes uses /l/?uddg=<urlencoded>
	if uddg := u.Query().Get("uddg"); uddg != "" {
		return uddg
	}
	return href
}

func hostFromURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

func isBlockedDomain(host string) bool {
	for _, b := range domainBlocklist {
		if host == b || strings.HasSuffix(host, "."+b) {
			return true
		}
	}
	return false
}

func sanitizeCompanyForSearch(s string) string {
	s = strings.TrimSpace(s)
	// remove common suffixes that confuse search
	r := strings.NewReplacer(
		", Inc.", "", " Inc.", "", " Inc", "",
		", LLC", "", " LLC", "",
		", Ltd.", "", " Ltd.", "", " Ltd", "",
		" (Copy)", "",
	)
	return strings.Join(strings.Fields(r.Replace(s)), " ")
}

func (r *Resolver) get(ctx context.Context, u string) (*http.Response, error) {
	if err := r.Limiter.WaitURL(ctx, u); err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0")
	return r.Client.Do(req)
}
