package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/hiredeck/job-board/internal/job"
	"github.com/hiredeck/job-board/internal/render"
	"github.com/hiredeck/job-board/internal/server"

	"github.com/gorilla/feeds"
)

type latestJobsLister interface {
	LatestJobs(limit int) ([]job.JobPost, error)
}

func ServeRSSFeed(svr server.Server, jobRepo latestJobsLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobPosts, err := jobRepo.LatestJobs(20)
		if err != nil {
			svr.Log(err, "unable to retrieve jobs for RSS Feed")
			svr.XML(w, http.StatusInternalServerError, []byte{})
			return
		}
		now := time.Now()
		siteURL := svr.GetConfig().URLProtocol + svr.GetConfig().SiteHost
		feed := &feeds.Feed{
			Title:       fmt.Sprintf("%s Jobs", svr.GetConfig().SiteName),
			Link:        &feeds.Link{Href: siteURL},
			Description: fmt.Sprintf("%s Jobs", svr.GetConfig().SiteName),
			Author:      &feeds.Author{Name: svr.GetConfig().SiteName, Email: svr.GetConfig().SupportEmail},
			Created:     now,
		}
		for _, j := range jobPosts {
			item := &feeds.Item{
				Title:       fmt.Sprintf("%s with %s - %s", j.Title, j.CompanyName, j.Location),
				Link:        &feeds.Link{Href: fmt.Sprintf("%s/job/%s", siteURL, j.Slug)},
				Description: render.MarkdownToHTML(j.Description + "\n\n**Salary:** " + j.Salary),
				Author:      &feeds.Author{Name: svr.GetConfig().SiteName, Email: svr.GetConfig().SupportEmail},
				Created:     j.CreatedAt,
			}
			if j.CompanyLogoID != "" {
				item.Enclosure = &feeds.Enclosure{Length: "not implemented", Type: "image", Url: fmt.Sprintf("%s/x/s/m/%s", siteURL, j.CompanyLogoID)}
			}
			feed.Items = append(feed.Items, item)
		}
		rssFeed, err := feed.ToRss()
		if err != nil {
			svr.Log(err, "unable to convert rss feed to xml")
			svr.XML(w, http.StatusInternalServerError, []byte{})
			return
		}
		svr.XML(w, http.StatusOK, []byte(rssFeed))
	}
}
