package upstream

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

type passageBody struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

// CreatePassage uploads a text passage and returns its asset id. The API
// answering id zero means the passage was not stored.
func (c *Client) CreatePassage(ctx context.Context, token, title, text string) (int64, error) {
	var data struct {
		Passage struct {
			PassageID int64 `json:"passage_id"`
		} `json:"passage"`
	}
	if err := c.request(ctx, http.MethodPost, "/passages", token, passageBody{Title: title, Text: text}, &data); err != nil {
		return 0, err
	}
	return data.Passage.PassageID, nil
}

func (c *Client) GetPassage(ctx context.Context, token string, passageID int64) (string, error) {
	var data struct {
		Passage struct {
			Text string `json:"text"`
		} `json:"passage"`
	}
	if err := c.request(ctx, http.MethodGet, fmt.Sprintf("/passages/%d", passageID), token, nil, &data); err != nil {
		return "", err
	}
	return data.Passage.Text, nil
}

// UploadImage submits an image file as multipart form data and returns the
// asset id.
func (c *Client) UploadImage(ctx context.Context, token, filename string, file io.Reader) (int64, error) {
	var data struct {
		Image struct {
			ImageID int64 `json:"image_id"`
		} `json:"image"`
	}
	fields := map[string]string{"title": filename}
	if err := c.upload(ctx, "/images", token, fields, "file", filename, file, &data); err != nil {
		return 0, err
	}
	return data.Image.ImageID, nil
}

func (c *Client) GetImageURL(ctx context.Context, token string, imageID int64) (string, error) {
	var data struct {
		Image struct {
			URL string `json:"url"`
		} `json:"image"`
	}
	if err := c.request(ctx, http.MethodGet, fmt.Sprintf("/images/%d", imageID), token, nil, &data); err != nil {
		return "", err
	}
	return data.Image.URL, nil
}

// UploadRecording submits an audio/video file as multipart form data and
// returns the asset id.
func (c *Client) UploadRecording(ctx context.Context, token, filename string, file io.Reader) (int64, error) {
	var data struct {
		Recording struct {
			RecordingID int64 `json:"recording_id"`
		} `json:"recording"`
	}
	fields := map[string]string{"title": filename}
	if err := c.upload(ctx, "/recordings", token, fields, "file", filename, file, &data); err != nil {
		return 0, err
	}
	return data.Recording.RecordingID, nil
}

func (c *Client) GetRecordingURL(ctx context.Context, token string, recordingID int64) (string, error) {
	var data struct {
		Recording struct {
			URL string `json:"url"`
		} `json:"recording"`
	}
	if err := c.request(ctx, http.MethodGet, fmt.Sprintf("/recordings/%d", recordingID), token, nil, &data); err != nil {
		return "", err
	}
	return data.Recording.URL, nil
}
