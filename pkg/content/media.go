package content

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/napryag/yoga_admin_bot/pkg/repository/model"
	"github.com/napryag/yoga_admin_bot/pkg/utils/errs"
)

// Каталог для превью постов: эти файлы не должны попадать в фотогалерею.
const previewDir = "notgallery"

// Каталог для загружаемых видео пакетов.
const videosDir = "videos"

var mediaExts = map[string]bool{
	".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true,
	".mp4": true, ".mov": true, ".avi": true,
	".mp3": true, ".wav": true,
}

// IsImageExt reports whether ext renders as a photo in the chat.
func IsImageExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".jpg", ".jpeg", ".png", ".gif", ".webp":
		return true
	}
	return false
}

// IsVideoExt reports whether ext renders as a video in the chat.
func IsVideoExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".mp4", ".mov", ".avi":
		return true
	}
	return false
}

// IsAudioExt reports whether ext renders as audio in the chat.
func IsAudioExt(ext string) bool {
	switch strings.ToLower(ext) {
	case ".mp3", ".wav":
		return true
	}
	return false
}

// ListMediaDirs: папки из public, в которых есть хотя бы один медиафайл.
func (s *Store) ListMediaDirs() ([]string, error) {
	entries, err := os.ReadDir(s.paths.PublicDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errs.New("failed to list public dir").Wrap(err)
	}

	var dirs []string
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		files, err := s.ListMediaFiles(e.Name())
		if err == nil && len(files) > 0 {
			dirs = append(dirs, e.Name())
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

// ListMediaFiles: медиафайлы в public/<dir>, по имени по возрастанию.
func (s *Store) ListMediaFiles(dir string) ([]model.MediaFile, error) {
	if err := checkName(dir); err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(filepath.Join(s.paths.PublicDir, dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errs.New("failed to list media dir").Arg("dir", dir).Wrap(err)
	}

	var files []model.MediaFile
	for _, e := range entries {
		if e.IsDir() || !mediaExts[strings.ToLower(filepath.Ext(e.Name()))] {
			continue
		}
		f := model.MediaFile{Dir: dir, Name: e.Name()}
		if info, err := e.Info(); err == nil {
			f.Size = info.Size()
		}
		files = append(files, f)
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, nil
}

// MediaPath возвращает путь к файлу на диске, проверив имена.
func (s *Store) MediaPath(dir, name string) (string, error) {
	if err := checkName(dir); err != nil {
		return "", err
	}
	if err := checkName(name); err != nil {
		return "", err
	}
	return filepath.Join(s.paths.PublicDir, dir, name), nil
}

func (s *Store) MediaExists(dir, name string) bool {
	path, err := s.MediaPath(dir, name)
	if err != nil {
		return false
	}
	_, err = os.Stat(path)
	return err == nil
}

// SaveMedia сохраняет файл в public/<dir>. При коллизии имени добавляется
// короткий uuid-суффикс, существующий файл не перезаписывается.
func (s *Store) SaveMedia(dir, name string, data []byte) (string, error) {
	path, err := s.MediaPath(dir, name)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", errs.New("failed to create media dir").Arg("dir", dir).Wrap(err)
	}

	if _, statErr := os.Stat(path); statErr == nil {
		ext := filepath.Ext(name)
		base := strings.TrimSuffix(name, ext)
		name = base + "-" + uuid.NewString()[:8] + ext
		path = filepath.Join(s.paths.PublicDir, dir, name)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", errs.New("failed to save media file").Arg("name", name).Wrap(err)
	}
	return name, nil
}

// SavePostPreview сохраняет фото-превью поста и возвращает web-путь
// вида /notgallery/post-preview-20260203-153045.jpg.
func (s *Store) SavePostPreview(data []byte, now time.Time) (string, error) {
	name := "post-preview-" + now.Format("20060102-150405") + ".jpg"
	saved, err := s.SaveMedia(previewDir, name, data)
	if err != nil {
		return "", err
	}
	return "/" + previewDir + "/" + saved, nil
}

// SaveVideoUpload сохраняет видеофайл пакета в public/videos. Коллизия
// имени разрешается временнЫм суффиксом. Возвращает web-путь /videos/<имя>.
func (s *Store) SaveVideoUpload(name string, data []byte, now time.Time) (string, error) {
	if err := checkName(name); err != nil {
		return "", err
	}
	if s.MediaExists(videosDir, name) {
		ext := filepath.Ext(name)
		base := strings.TrimSuffix(name, ext)
		name = base + "-" + now.Format("20060102-150405") + ext
	}
	saved, err := s.SaveMedia(videosDir, name, data)
	if err != nil {
		return "", err
	}
	return "/" + videosDir + "/" + saved, nil
}

// RenameMedia переименовывает файл внутри public/<dir>. Если новое имя без
// расширения, а старое с ним — расширение сохраняется. Отказывает, если
// файл с новым именем уже существует.
func (s *Store) RenameMedia(dir, oldName, newName string) (string, error) {
	oldPath, err := s.MediaPath(dir, oldName)
	if err != nil {
		return "", err
	}
	if err := checkName(newName); err != nil {
		return "", err
	}

	oldExt := filepath.Ext(oldName)
	if filepath.Ext(newName) == "" && oldExt != "" {
		newName += oldExt
	}
	newPath := filepath.Join(s.paths.PublicDir, dir, newName)

	if _, err := os.Stat(oldPath); err != nil {
		return "", errs.New("source file is gone").Arg("name", oldName).Wrap(err)
	}
	if _, err := os.Stat(newPath); err == nil {
		return "", errs.New("target name already exists").Arg("name", newName)
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		return "", errs.New("failed to rename media file").Arg("name", oldName).Wrap(err)
	}
	return newName, nil
}

func (s *Store) DeleteMedia(dir, name string) error {
	path, err := s.MediaPath(dir, name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return errs.New("failed to delete media file").Arg("name", name).Wrap(err)
	}
	return nil
}

// DeleteVideoFile удаляет загруженный файл видео по его web-пути
// /videos/<имя>; чужие пути (URL и т.п.) игнорируются.
func (s *Store) DeleteVideoFile(webPath string) error {
	name, ok := strings.CutPrefix(webPath, "/"+videosDir+"/")
	if !ok || name == "" {
		return nil
	}
	if err := checkName(name); err != nil {
		return nil
	}
	if !s.MediaExists(videosDir, name) {
		return nil
	}
	return s.DeleteMedia(videosDir, name)
}

func checkName(name string) error {
	if name == "" || strings.ContainsAny(name, `/\`) || name == "." || name == ".." {
		return errs.New("invalid file name").Arg("name", name)
	}
	return nil
}
