package server

import (
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	iofs "io/fs"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"sigs.k8s.io/yaml"

	"github.com/nlines/taild/pkg/api"
	"github.com/nlines/taild/pkg/fs"
	"github.com/nlines/taild/pkg/model"
	"github.com/nlines/taild/pkg/set"
	"github.com/nlines/taild/pkg/tail"
	"github.com/nlines/taild/pkg/utils"
)

func (s *Server) registerAPIs(e *echo.Echo) {
	g := e.Group("/api/v1")
	g.GET("/files", s.handlerListFiles)
	g.POST("/files", s.handlerReloadAllFiles)
	g.GET("/files/:name", s.handlerGetFile)
	g.POST("/files/:name", s.handlerReloadFile)
	g.DELETE("/files/:name", s.handlerRemoveFile)
	g.GET("/files/:name/tail", s.handlerTailFile)
}

func (s *Server) convertToGetFileResponse(file model.LogFile, meta *model.LogFileMeta) api.GetFileResponse {
	resp := api.GetFileResponse{
		Name:      file.Name,
		Path:      file.Path,
		UpdatedAt: file.UpdatedAt,
	}
	if meta != nil {
		resp.Size = meta.Size
		resp.Mtime = meta.Mtime
		resp.TailCount = meta.TailCount
		resp.LastTailedAt = meta.LastTailedAt
	}
	if stat, ok := s.fileStats.Get(file.Name); ok {
		resp.Size = stat.Size
		resp.Mtime = stat.Mtime
	}
	return resp
}

func (s *Server) handlerListFiles(c echo.Context) error {
	l := getLogger(c)
	l.Debug("Invoked")

	var files []model.LogFile
	err := s.getDB(c).Order("name").Find(&files).Error
	if err != nil {
		const msg = "Fail to list files"
		l.Error(msg, slogErrAttr(err))
		return newHTTPError(http.StatusInternalServerError, msg)
	}

	var metas []model.LogFileMeta
	err = s.getDB(c).Find(&metas).Error
	if err != nil {
		const msg = "Fail to list file metas"
		l.Error(msg, slogErrAttr(err))
		return newHTTPError(http.StatusInternalServerError, msg)
	}
	metaByName := make(map[string]*model.LogFileMeta, len(metas))
	for i := range metas {
		metaByName[metas[i].Name] = &metas[i]
	}

	resp := make(api.ListFilesResponse, len(files))
	for i, file := range files {
		resp[i] = s.convertToGetFileResponse(file, metaByName[file.Name])
	}
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) handlerGetFile(c echo.Context) error {
	l := getLogger(c)
	l.Debug("Invoked")

	name, err := getRequiredParamFromEchoContext(c, "name")
	if err != nil {
		return err
	}

	var file model.LogFile
	res := s.getDB(c).
		Where(model.LogFile{Name: name}).
		Limit(1).
		Find(&file)
	if res.Error != nil {
		const msg = "Fail to get file"
		l.Error(msg, slogErrAttr(res.Error))
		return newHTTPError(http.StatusInternalServerError, msg)
	}
	if res.RowsAffected == 0 {
		return notFound("File not found")
	}

	var meta model.LogFileMeta
	metaRes := s.getDB(c).
		Where(model.LogFileMeta{Name: name}).
		Limit(1).
		Find(&meta)
	if metaRes.Error == nil && metaRes.RowsAffected > 0 {
		return c.JSON(http.StatusOK, s.convertToGetFileResponse(file, &meta))
	}
	return c.JSON(http.StatusOK, s.convertToGetFileResponse(file, nil))
}

func (s *Server) loadFile(c echo.Context, logger *slog.Logger, dirs []string, file string) (*model.LogFile, error) {
	l := logger.With(slog.String("config", file))

	var (
		data  []byte
		err   error
		found bool
	)
	for _, dir := range dirs {
		data, err = os.ReadFile(filepath.Join(dir, file))
		if err == nil {
			found = true
			break
		}
		if !os.IsNotExist(err) {
			const msg = "Fail to read definition"
			l.Error(msg, slogErrAttr(err))
			return nil, newHTTPError(http.StatusInternalServerError, msg)
		}
	}
	if !found {
		return nil, notFound(fmt.Sprintf("File not found: %q", file))
	}

	var logFile model.LogFile
	if err := yaml.Unmarshal(data, &logFile); err != nil {
		return nil, badRequest(err.Error())
	}
	if err := s.e.Validator.Validate(&logFile); err != nil {
		return nil, err
	}

	db := s.getDB(c)
	err = db.
		Clauses(clause.OnConflict{UpdateAll: true}).
		Create(&logFile).Error
	if err != nil {
		const msg = "Fail to create file record"
		l.Error(msg, slogErrAttr(err))
		return nil, newHTTPError(http.StatusInternalServerError, msg)
	}

	meta := model.LogFileMeta{Name: logFile.Name}
	if fi, err := os.Stat(logFile.Path); err == nil {
		meta.Size = fi.Size()
		meta.Mtime = fi.ModTime().Unix()
		s.fileStats.Set(logFile.Name, api.FileStat{Size: meta.Size, Mtime: meta.Mtime})
	}
	err = db.
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&meta).Error
	if err != nil {
		const msg = "Fail to create file meta"
		l.Error(msg, slogErrAttr(err))
		return nil, newHTTPError(http.StatusInternalServerError, msg)
	}
	return &logFile, nil
}

func (s *Server) handlerReloadAllFiles(c echo.Context) error {
	l := getLogger(c)
	l.Debug("Invoked")

	var names []string
	db := s.getDB(c)
	err := db.Model(&model.LogFile{}).Pluck("name", &names).Error
	if err != nil {
		const msg = "Fail to list files"
		l.Error(msg, slogErrAttr(err))
		return newHTTPError(http.StatusInternalServerError, msg)
	}

	l.Info("Reloading all file definitions")
	toDelete := set.New(names...)
	for _, dir := range s.config.FileConfigDir {
		if !utils.DirExists(dir) {
			continue
		}
		entries, err := fs.ListDir(dir)
		if err != nil {
			l.Warn("Fail to list dir", slogErrAttr(err), slog.String("dir", dir))
			continue
		}
		for _, fileName := range entries {
			if fileName[0] == '.' || !strings.HasSuffix(fileName, suffixYAML) {
				continue
			}
			logFile, err := s.loadFile(c, l, s.config.FileConfigDir, fileName)
			if err != nil {
				return err
			}
			toDelete.Del(logFile.Name)
		}
	}

	toDeleteNames := toDelete.ToList()
	if len(toDeleteNames) > 0 {
		l.Info("Deleting files without definitions", slog.Int("count", len(toDeleteNames)))
		err = db.Where("name IN ?", toDeleteNames).Delete(&model.LogFile{}).Error
		if err != nil {
			const msg = "Fail to delete files"
			l.Error(msg, slogErrAttr(err))
			return newHTTPError(http.StatusInternalServerError, msg)
		}
		err = db.Where("name IN ?", toDeleteNames).Delete(&model.LogFileMeta{}).Error
		if err != nil {
			l.Error("Fail to delete file metas", slogErrAttr(err))
		}
		for _, name := range toDeleteNames {
			s.fileStats.Remove(name)
		}
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handlerReloadFile(c echo.Context) error {
	l := getLogger(c)
	l.Debug("Invoked")

	name, err := getRequiredParamFromEchoContext(c, "name")
	if err != nil {
		return err
	}
	_, err = s.loadFile(c, l.With(slog.String("file", name)), s.config.FileConfigDir, name+suffixYAML)
	if err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) handlerRemoveFile(c echo.Context) error {
	l := getLogger(c)
	l.Debug("Invoked")

	name, err := getRequiredParamFromEchoContext(c, "name")
	if err != nil {
		return err
	}

	db := s.getDB(c)
	res := db.Where(model.LogFile{Name: name}).Delete(&model.LogFile{})
	if res.Error != nil {
		const msg = "Fail to delete file"
		l.Error(msg, slogErrAttr(res.Error))
		return newHTTPError(http.StatusInternalServerError, msg)
	}
	if res.RowsAffected == 0 {
		return notFound("File not found")
	}
	db.Where(model.LogFileMeta{Name: name}).Delete(&model.LogFileMeta{})
	s.fileStats.Remove(name)

	return c.NoContent(http.StatusNoContent)
}

func decompressGzip(path string) (fp string, err error) {
	content, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open: %w", err)
	}
	defer content.Close()
	gr, err := gzip.NewReader(content)
	if err != nil {
		return "", fmt.Errorf("read gzip: %w", err)
	}
	defer gr.Close()
	tmpfile, err := os.CreateTemp("", ".taild_log")
	if err != nil {
		return "", fmt.Errorf("create temp: %w", err)
	}
	defer tmpfile.Close()
	_, err = io.Copy(tmpfile, gr)
	if err != nil {
		return "", fmt.Errorf("copy: %w", err)
	}
	return tmpfile.Name(), nil
}

func (s *Server) handlerTailFile(c echo.Context) error {
	l := getLogger(c)
	l.Debug("Invoked")

	name, err := getRequiredParamFromEchoContext(c, "name")
	if err != nil {
		return err
	}

	var req api.TailFileRequest
	err = bindAndValidate(c, &req)
	if err != nil {
		return err
	}
	n := req.N
	if n == 0 {
		n = tail.DefaultLines
	}
	if max := s.config.MaxTailLines; max > 0 && n > max {
		n = max
	}

	var file model.LogFile
	res := s.getDB(c).
		Where(model.LogFile{Name: name}).
		Limit(1).
		Find(&file)
	if res.Error != nil {
		const msg = "Fail to get file"
		l.Error(msg, slogErrAttr(res.Error))
		return newHTTPError(http.StatusInternalServerError, msg)
	}
	if res.RowsAffected == 0 {
		return notFound("File not found")
	}

	path := file.Path
	if filepath.Ext(path) == ".gz" {
		fp, err := decompressGzip(path)
		if err != nil {
			l.Error("Fail to decompress log file", slogErrAttr(err))
			if errors.Is(err, iofs.ErrNotExist) {
				return notFound("Log file not found")
			}
			return newHTTPError(http.StatusInternalServerError, "Fail to decompress log file")
		}
		defer os.Remove(fp)
		path = fp
	}

	c.Response().Header().Set(echo.HeaderContentType, echo.MIMETextPlainCharsetUTF8)
	fw := NewFlushWriter(c.Response())
	written, err := s.engine.Tail(c.Request().Context(), fw, path, n)
	if err != nil {
		l.Error("Fail to tail log file", slogErrAttr(err), slog.String("file", name))
		if written == 0 && !c.Response().Committed {
			return tailHTTPError(err)
		}
		return err
	}

	s.recordTailed(c, name)
	return nil
}

func (s *Server) recordTailed(c echo.Context, name string) {
	err := s.getDB(c).
		Model(&model.LogFileMeta{}).
		Where("name = ?", name).
		Updates(map[string]any{
			"tail_count":     gorm.Expr("tail_count + 1"),
			"last_tailed_at": time.Now().Unix(),
		}).Error
	if err != nil {
		getLogger(c).Warn("Fail to record tail", slogErrAttr(err), slog.String("file", name))
	}
}
