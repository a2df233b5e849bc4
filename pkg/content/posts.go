package content

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/napryag/yoga_admin_bot/pkg/repository/model"
	"github.com/napryag/yoga_admin_bot/pkg/utils/errs"
)

// Разделитель YAML-шапки поста.
const frontmatterSep = "---"

// NewPostSlug генерирует имя нового поста: post-20260203-153045.
func NewPostSlug(now time.Time) string {
	return "post-" + now.Format("20060102-150405")
}

func (s *Store) postPath(slug string) string {
	return filepath.Join(s.paths.PostsDir, slug+".md")
}

func (s *Store) PostExists(slug string) bool {
	_, err := os.Stat(s.postPath(slug))
	return err == nil
}

func (s *Store) ReadPost(slug string) (string, error) {
	data, err := os.ReadFile(s.postPath(slug))
	if err != nil {
		return "", errs.New("failed to read post").Arg("slug", slug).Wrap(err)
	}
	return string(data), nil
}

func (s *Store) WritePost(slug, text string) error {
	if err := os.MkdirAll(s.paths.PostsDir, 0o755); err != nil {
		return errs.New("failed to create posts dir").Wrap(err)
	}
	path := s.postPath(slug)
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(text), 0o644); err != nil {
		return errs.New("failed to write post").Arg("slug", slug).Wrap(err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return errs.New("failed to replace post").Arg("slug", slug).Wrap(err)
	}
	return nil
}

func (s *Store) DeletePost(slug string) error {
	if err := os.Remove(s.postPath(slug)); err != nil {
		return errs.New("failed to delete post").Arg("slug", slug).Wrap(err)
	}
	return nil
}

// ListPosts возвращает посты: новые сверху, посты без даты — в конце,
// при равной дате — по slug по возрастанию.
func (s *Store) ListPosts() ([]model.PostMeta, error) {
	entries, err := os.ReadDir(s.paths.PostsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errs.New("failed to list posts").Wrap(err)
	}

	var posts []model.PostMeta
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		slug := strings.TrimSuffix(e.Name(), ".md")
		meta := model.PostMeta{Slug: slug, Title: slug}

		data, err := os.ReadFile(filepath.Join(s.paths.PostsDir, e.Name()))
		if err == nil {
			fields := parseFrontmatter(string(data))
			if t := fields["title"]; t != "" {
				meta.Title = t
			}
			meta.Date = fields["date"]
		}
		posts = append(posts, meta)
	}

	sort.Slice(posts, func(i, j int) bool {
		di, dj := posts[i].Date, posts[j].Date
		if di != dj {
			// пустая дата сортируется в конец
			if di == "" {
				return false
			}
			if dj == "" {
				return true
			}
			return di > dj
		}
		return posts[i].Slug < posts[j].Slug
	})
	return posts, nil
}

// PostTitle возвращает заголовок из шапки поста, либо slug.
func (s *Store) PostTitle(slug string) string {
	text, err := s.ReadPost(slug)
	if err != nil {
		return slug
	}
	if t := parseFrontmatter(text)["title"]; t != "" {
		return t
	}
	return slug
}

// parseFrontmatter разбирает "key: value" между первым и вторым '---'.
// Неизвестные поля не интерпретируются, кавычки у значений снимаются.
func parseFrontmatter(text string) map[string]string {
	fields := map[string]string{}
	lines := strings.Split(text, "\n")
	if len(lines) == 0 || strings.TrimSpace(lines[0]) != frontmatterSep {
		return fields
	}
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == frontmatterSep {
			break
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		fields[strings.TrimSpace(key)] = unquote(strings.TrimSpace(value))
	}
	return fields
}

func unquote(v string) string {
	if len(v) >= 2 && strings.HasPrefix(v, `"`) && strings.HasSuffix(v, `"`) {
		return v[1 : len(v)-1]
	}
	return v
}

// SetPreviewImage прописывает previewImage в шапку поста, если его там нет.
// Поле добавляется первым, остальные строки шапки и тело не меняются.
// Если шапки нет или она не закрыта, создаётся минимальная новая шапка.
func (s *Store) SetPreviewImage(slug, webPath string) error {
	text, err := s.ReadPost(slug)
	if err != nil {
		return err
	}

	field := `previewImage: "` + webPath + `"`
	lines := strings.Split(text, "\n")

	endIdx := -1
	if len(lines) > 0 && strings.TrimSpace(lines[0]) == frontmatterSep {
		for i := 1; i < len(lines); i++ {
			if strings.TrimSpace(lines[i]) == frontmatterSep {
				endIdx = i
				break
			}
		}
	}

	if endIdx < 0 {
		// Шапки нет или она не закрыта — добавляем свежую перед текстом.
		updated := strings.Join([]string{frontmatterSep, field, frontmatterSep, ""}, "\n") + text
		return s.WritePost(slug, updated)
	}

	for _, line := range lines[1:endIdx] {
		if strings.HasPrefix(strings.TrimSpace(line), "previewImage:") {
			return nil // уже есть
		}
	}

	updated := make([]string, 0, len(lines)+1)
	updated = append(updated, frontmatterSep, field)
	updated = append(updated, lines[1:]...)
	return s.WritePost(slug, strings.Join(updated, "\n"))
}
