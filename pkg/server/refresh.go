package server

import (
	"context"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"github.com/nlines/taild/pkg/api"
	"github.com/nlines/taild/pkg/model"
)

const jobStatRefresh = "refresh-file-stats"

// refreshFileStats re-stats every registered file and records the result in
// the in-memory stat cache and the LogFileMeta table. Files that cannot be
// statted keep their last persisted meta but drop out of the cache.
func (s *Server) refreshFileStats(ctx context.Context) {
	l := s.logger

	var files []model.LogFile
	if err := s.db.WithContext(ctx).Find(&files).Error; err != nil {
		l.Error("Fail to list files", slogErrAttr(err))
		return
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(8)
	for _, file := range files {
		file := file
		eg.Go(func() error {
			fi, err := os.Stat(file.Path)
			if err != nil {
				l.Warn("Fail to stat file", slogErrAttr(err), slog.String("file", file.Name))
				s.fileStats.Remove(file.Name)
				return nil
			}
			stat := api.FileStat{
				Size:  fi.Size(),
				Mtime: fi.ModTime().Unix(),
			}
			s.fileStats.Set(file.Name, stat)
			err = s.db.WithContext(egCtx).
				Model(&model.LogFileMeta{}).
				Where("name = ?", file.Name).
				Updates(map[string]any{
					"size":  stat.Size,
					"mtime": stat.Mtime,
				}).Error
			if err != nil {
				l.Warn("Fail to update file meta", slogErrAttr(err), slog.String("file", file.Name))
			}
			return nil
		})
	}
	_ = eg.Wait()
}
