package receiver

import (
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/napryag/yoga_admin_bot/pkg/content"
	"github.com/napryag/yoga_admin_bot/pkg/paginate"
)

// Предпросмотр поста при редактировании режем с запасом до лимита Telegram.
const postPreviewLimit = 3500

// ---------- Добавление поста ----------

func (e *Engine) startAddPost(chatID int64, sess *Session) {
	sess.Reset()
	sess.State = StateAddPost
	e.sendMd(chatID,
		"Отправьте *одним сообщением* полный текст поста в формате markdown.\n\n"+
			"Шапка между строками `---`, затем тело:\n"+
			"```md\n"+
			"---\n"+
			"title: \"Заголовок поста\"\n"+
			"date: \"2026-02-03\"\n"+
			"category: \"Йога\"\n"+
			"excerpt: \"Короткое описание\"\n"+
			"emoji: \"🧘‍♀️\"\n"+
			"---\n"+
			"\n"+
			"Текст поста в формате markdown...\n"+
			"```\n\n"+
			"*Обязательные поля:* title, date, category, excerpt.\n"+
			"*Необязательные:* emoji, previewImage, image, video, telegram.\n\n"+
			"После отправки я сохраню файл в `content/posts/` и спрошу про превью-изображение.")
}

func (e *Engine) handleAddPostText(chatID int64, sess *Session, text string) {
	if text == "" {
		e.send(chatID, "Пост пустой. Отправьте, пожалуйста, текст поста в формате markdown одним сообщением.")
		return
	}

	slug := content.NewPostSlug(e.now())
	if err := e.store.WritePost(slug, text); err != nil {
		e.fail(chatID, sess, "write post failed", err)
		return
	}

	sess.PostSlug = slug
	sess.State = StateAddPostPreview
	e.sendMd(chatID, fmt.Sprintf(
		"✅ Пост сохранён как файл `%s.md` в `content/posts/`.\n\n"+
			"Хотите добавить превью-изображение?\n"+
			"• Если да — просто отправьте фото одним сообщением.\n"+
			"• Если нет — отправьте текст `Без превью`.", slug))
}

func (e *Engine) handleAddPostPreviewText(chatID int64, sess *Session, text string) {
	switch strings.ToLower(text) {
	case "без превью", "нет превью", "нет":
		sess.Reset()
		e.sendKb(chatID, "Пост сохранён без превью-изображения.", BlogMenu())
	default:
		e.send(chatID,
			"Чтобы добавить превью, отправьте фото.\n"+
				"Если не нужно превью — отправьте текст «Без превью».")
	}
}

// handleAddPostPreviewPhoto: фото скачивается, кладётся в public/notgallery
// и прописывается в шапку поста как previewImage.
func (e *Engine) handleAddPostPreviewPhoto(chatID int64, sess *Session, fileID string) {
	if sess.PostSlug == "" || !e.store.PostExists(sess.PostSlug) {
		sess.Reset()
		e.sendKb(chatID,
			"Не удалось связать фото с постом. Попробуйте снова через «Управление блогом → Добавить пост».",
			BlogMenu())
		return
	}

	data, err := e.files.Fetch(fileID)
	if err != nil {
		e.send(chatID, "Не удалось скачать фото с серверов Telegram: "+err.Error())
		return
	}

	webPath, err := e.store.SavePostPreview(data, e.now())
	if err != nil {
		e.fail(chatID, sess, "save preview failed", err)
		return
	}
	if err := e.store.SetPreviewImage(sess.PostSlug, webPath); err != nil {
		e.fail(chatID, sess, "set preview failed", err)
		return
	}

	sess.Reset()
	e.sendMdKb(chatID, fmt.Sprintf(
		"✅ Превью добавлено.\nВ посте прописан `previewImage: \"%s\"`.", webPath), BlogMenu())
}

// ---------- Выбор поста (удаление / редактирование) ----------

// sendPostsPage — страница выбора поста; forDelete переключает назначение.
func (e *Engine) sendPostsPage(chatID int64, pageNum int, forDelete bool) {
	posts, err := e.store.ListPosts()
	if err != nil {
		e.send(chatID, "Не удалось получить список постов: "+err.Error())
		return
	}

	page, ok := paginate.Slice(posts, postsPageSize, pageNum)
	if !ok {
		e.sendKb(chatID, "Постов в блоге пока нет.", BlogMenu())
		return
	}

	selectTag, pageTag, title := "editpost", "editpostpage", "Выберите пост для редактирования:"
	if forDelete {
		selectTag, pageTag, title = "delpost", "delpostpage", "Выберите пост для удаления:"
	}

	var rows [][]tgbotapi.InlineKeyboardButton
	for _, p := range page.Items {
		rows = append(rows, row(btn(trimLabel(p.Title), cb(selectTag, p.Slug, cbInt(page.Number)))))
	}
	if nav := navRow(pageTag, page.HasPrev, page.HasNext, page.Number); nav != nil {
		rows = append(rows, nav)
	}
	rows = append(rows, row(btn(btnCancel, cb("cancel_delpost"))))

	e.sendKb(chatID, title, tgbotapi.NewInlineKeyboardMarkup(rows...))
}

// ---------- Удаление поста ----------

func (e *Engine) askDeletePost(chatID int64, slug string) {
	if !e.store.PostExists(slug) {
		e.sendKb(chatID, "Пост уже удалён или файл не найден.", BlogMenu())
		return
	}
	title := e.store.PostTitle(slug)

	e.sendMdKb(chatID,
		fmt.Sprintf("Вы действительно хотите удалить пост «%s»?\n\nФайл: `%s.md`", title, slug),
		confirmKeyboard("✅ Да, удалить пост", cb("confirm_delpost", slug), cb("cancel_delpost")))
}

func (e *Engine) confirmDeletePost(chatID int64, sess *Session, slug string) {
	if !e.store.PostExists(slug) {
		e.sendKb(chatID, "Файл поста уже не существует.", BlogMenu())
		return
	}
	if err := e.store.DeletePost(slug); err != nil {
		e.fail(chatID, sess, "delete post failed", err)
		return
	}
	e.sendMdKb(chatID, fmt.Sprintf("🗑 Пост `%s.md` удалён.", slug), BlogMenu())
}

// ---------- Редактирование поста ----------

func (e *Engine) startEditPost(chatID int64, sess *Session, slug string) {
	text, err := e.store.ReadPost(slug)
	if err != nil {
		e.sendKb(chatID, "Пост уже удалён или файл не найден.", BlogMenu())
		return
	}

	sess.Reset()
	sess.State = StateEditPost
	sess.PostSlug = slug

	preview := text
	if runes := []rune(preview); len(runes) > postPreviewLimit {
		preview = string(runes[:postPreviewLimit]) + "\n\n... (обрезано, скопируйте из исходного файла при необходимости)"
	}

	e.sendMd(chatID,
		"Текущий текст поста. Скопируйте, отредактируйте и пришлите *полностью* одним сообщением.\n\n"+
			"```md\n"+preview+"\n```")
}

func (e *Engine) handleEditPostText(chatID int64, sess *Session, text string) {
	if text == "" {
		e.send(chatID, "Пост пустой. Отправьте, пожалуйста, полный текст поста в формате markdown.")
		return
	}
	if sess.PostSlug == "" || !e.store.PostExists(sess.PostSlug) {
		sess.Reset()
		e.sendKb(chatID,
			"Не удалось определить, какой пост редактируется. Начните заново через «Редактировать пост».",
			BlogMenu())
		return
	}

	slug := sess.PostSlug
	if err := e.store.WritePost(slug, text); err != nil {
		e.fail(chatID, sess, "write post failed", err)
		return
	}

	sess.Reset()
	e.sendMdKb(chatID, fmt.Sprintf(
		"✅ Пост `%s.md` обновлён.\n\nИзменения появятся в блоге после следующей публикации сайта.", slug),
		BlogMenu())
}
