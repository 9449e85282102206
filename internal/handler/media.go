package handler

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"strconv"

	"github.com/hiredeck/job-board/internal/database"
	"github.com/hiredeck/job-board/internal/server"
	"github.com/hiredeck/job-board/internal/user"

	"github.com/gorilla/mux"
	"github.com/nfnt/resize"
)

const (
	UploadKindAvatar = "avatar"
	UploadKindResume = "resume"
	UploadKindLogo   = "logo"
)

// SaveMediaHandler accepts a multipart upload with a "file" part and a
// "kind" field. Avatars and resumes are linked to the signed in user's
// profile right away, a logo upload just returns the media id for use in
// a company payload.
func SaveMediaHandler(svr server.Server, userRepo profileUpdater) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := signedInUser(svr, r)
		if err != nil {
			svr.Error(w, http.StatusUnauthorized, "not signed in")
			return
		}
		maxUploadSize := svr.GetConfig().MaxUploadSize
		r.Body = http.MaxBytesReader(w, r.Body, int64(maxUploadSize))
		file, header, err := r.FormFile("file")
		if err != nil {
			svr.Log(err, "unable to read media file")
			svr.Error(w, http.StatusRequestEntityTooLarge, "file is missing or too large")
			return
		}
		defer file.Close()
		fileBytes, err := io.ReadAll(file)
		if err != nil {
			svr.Log(err, "unable to read media file content")
			svr.Error(w, http.StatusRequestEntityTooLarge, "file is too large")
			return
		}
		if header.Size > int64(maxUploadSize) {
			svr.Log(errors.New("media file is too large"), fmt.Sprintf("media file too large: %d > %d", header.Size, maxUploadSize))
			svr.Error(w, http.StatusRequestEntityTooLarge, "file is too large")
			return
		}
		kind := r.FormValue("kind")
		contentType := http.DetectContentType(fileBytes)
		switch kind {
		case UploadKindResume:
			if contentType != "application/pdf" {
				svr.Log(errors.New("resume is not application/pdf"), fmt.Sprintf("resume file is not application/pdf got %s", contentType))
				svr.Error(w, http.StatusUnsupportedMediaType, "resume must be a PDF file")
				return
			}
		case UploadKindAvatar, UploadKindLogo:
			contentTypeInvalid := true
			for _, allowedMedia := range allowedImageTypes {
				if allowedMedia == contentType {
					contentTypeInvalid = false
				}
			}
			if contentTypeInvalid {
				svr.Log(errors.New("invalid media content type"), fmt.Sprintf("media file %s is not one of the allowed media types: %+v", contentType, allowedImageTypes))
				svr.Error(w, http.StatusUnsupportedMediaType, "file must be a png or jpeg image")
				return
			}
		default:
			svr.Error(w, http.StatusBadRequest, "kind must be one of avatar, resume, logo")
			return
		}
		mediaID, err := database.SaveMedia(svr.Conn, database.Media{
			Bytes:     fileBytes,
			MediaType: contentType,
			FileName:  header.Filename,
		})
		if err != nil {
			svr.Log(err, "unable to save media to db")
			svr.Error(w, http.StatusInternalServerError, "an internal error has occurred")
			return
		}
		switch kind {
		case UploadKindAvatar:
			p := user.ProfileUpdate{UserID: claims.UserID, AvatarID: &mediaID}
			if err := userRepo.UpdateProfile(p); err != nil {
				svr.Log(err, "unable to link avatar to profile")
				svr.Error(w, http.StatusInternalServerError, "an internal error has occurred")
				return
			}
		case UploadKindResume:
			fileName := header.Filename
			p := user.ProfileUpdate{UserID: claims.UserID, ResumeID: &mediaID, ResumeName: &fileName}
			if err := userRepo.UpdateProfile(p); err != nil {
				svr.Log(err, "unable to link resume to profile")
				svr.Error(w, http.StatusInternalServerError, "an internal error has occurred")
				return
			}
		}
		extra := map[string]interface{}{
			"id":   mediaID,
			"url":  fmt.Sprintf("/x/s/m/%s", mediaID),
			"kind": kind,
		}
		if kind == UploadKindResume {
			extra["original_name"] = header.Filename
		}
		svr.OK(w, http.StatusOK, "file uploaded successfully", extra)
	}
}

func RetrieveMediaHandler(svr server.Server) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		mediaID := vars["id"]
		media, err := database.GetMediaByID(svr.Conn, mediaID)
		if err != nil {
			svr.Log(err, fmt.Sprintf("unable to retrieve media by ID: '%s'", mediaID))
			svr.MEDIA(w, http.StatusNotFound, media.Bytes, media.MediaType)
			return
		}
		height := r.URL.Query().Get("h")
		width := r.URL.Query().Get("w")
		if height == "" && width == "" {
			svr.MEDIA(w, http.StatusOK, media.Bytes, media.MediaType)
			return
		}
		he, err := strconv.Atoi(height)
		if err != nil {
			svr.MEDIA(w, http.StatusOK, media.Bytes, media.MediaType)
			return
		}
		wi, err := strconv.Atoi(width)
		if err != nil {
			svr.MEDIA(w, http.StatusOK, media.Bytes, media.MediaType)
			return
		}
		contentTypeInvalid := true
		for _, allowedMedia := range allowedImageTypes {
			if allowedMedia == media.MediaType {
				contentTypeInvalid = false
			}
		}
		// resizing only makes sense for images, PDFs are served as is
		if contentTypeInvalid {
			svr.MEDIA(w, http.StatusOK, media.Bytes, media.MediaType)
			return
		}
		decImage, _, err := image.Decode(bytes.NewReader(media.Bytes))
		if err != nil {
			svr.Log(err, "unable to decode image from bytes")
			svr.Error(w, http.StatusInternalServerError, "an internal error has occurred")
			return
		}
		m := resize.Resize(uint(wi), uint(he), decImage, resize.Lanczos3)
		resizeImageBuf := new(bytes.Buffer)
		switch media.MediaType {
		case "image/jpg", "image/jpeg":
			if err := jpeg.Encode(resizeImageBuf, m, nil); err != nil {
				svr.Log(err, "unable to encode resizeImage into jpeg")
				svr.Error(w, http.StatusInternalServerError, "an internal error has occurred")
				return
			}
		case "image/png":
			if err := png.Encode(resizeImageBuf, m); err != nil {
				svr.Log(err, "unable to encode resizeImage into png")
				svr.Error(w, http.StatusInternalServerError, "an internal error has occurred")
				return
			}
		default:
			svr.MEDIA(w, http.StatusOK, media.Bytes, media.MediaType)
			return
		}
		svr.MEDIA(w, http.StatusOK, resizeImageBuf.Bytes(), media.MediaType)
	}
}
