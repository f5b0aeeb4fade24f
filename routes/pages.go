package routes

import (
	"html/template"
	"net/http"

	"vidserve/logger"
	"vidserve/models"
)

var loginTemplate = template.Must(template.New("login").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8"/>
  <title>Transcoder Login</title>
</head>
<body>
  <h1>Log In</h1>
  <form method="post" action="/login">
    <label>Username:</label>
    <input type="text" name="username" required><br><br>
    <label>Password:</label>
    <input type="password" name="password" required><br><br>
    <button type="submit">Log In</button>
  </form>
</body>
</html>
`))

var indexTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8"/>
  <title>Simple Transcoder</title>
</head>
<body>
  <h1>Upload Video</h1>
  <p>Logged in as {{.Identity}}</p>
  <form method="post" action="/logout"><button type="submit">Log out</button></form>
  <form method="post" action="/upload" enctype="multipart/form-data">
    <input type="file" name="video" required><br><br>

    <label>Quality:</label>
    <select name="quality">
      <option value="1080">1080p</option>
      <option value="720">720p</option>
      <option value="480">480p</option>
      <option value="360">360p</option>
    </select><br><br>

    <label>Framerate:</label>
    <select name="framerate">
      <option value="30">30 fps</option>
      <option value="60">60 fps</option>
    </select><br><br>

    <label>Output Format:</label>
    <select name="format">
      <option value="mp4">MP4</option>
      <option value="mov">MOV</option>
      <option value="mkv">MKV</option>
    </select><br><br>

    <button type="submit">Upload &amp; Transcode</button>
  </form>

  <h2>Processed Videos</h2>
  <ul>
    {{range .Files}}
      <li>
        <a href="/outputs/{{$.Identity}}/{{.Filename}}">{{.Filename}}</a><br>
        <small>
          Resolution: {{if .Metadata.Resolution}}{{.Metadata.Resolution}}{{else}}?{{end}} |
          FPS: {{if .Metadata.Framerate}}{{.Metadata.Framerate}}{{else}}?{{end}} |
          Format: {{if .Metadata.Format}}{{.Metadata.Format}}{{else}}?{{end}} |
          Size: {{if .Metadata.SizeKB}}{{.Metadata.SizeKB}}{{else}}?{{end}} KB
        </small>
      </li>
    {{end}}
  </ul>
</body>
</html>
`))

// LoginPage renders the login form.
func (h *Handler) LoginPage(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := loginTemplate.Execute(w, nil); err != nil {
		logger.Errorf("Failed to render login page: %v", err)
	}
}

// Index renders the identity's catalog and the upload form.
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFrom(r.Context())

	files, err := h.cat.List(identity)
	if err != nil {
		logger.Errorf("Failed to list catalog for %s: %v", identity, err)
		http.Error(w, "Failed to list videos", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	data := struct {
		Identity string
		Files    []models.OutputAsset
	}{Identity: identity, Files: files}
	if err := indexTemplate.Execute(w, data); err != nil {
		logger.Errorf("Failed to render index for %s: %v", identity, err)
	}
}
