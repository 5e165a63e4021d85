package xerr

import "errors"

// Operator-facing messages. The text is what the client shows verbatim.
var (
	// generic
	ErrInternalServer = errors.New("Sunucu hatası")

	// request
	ErrInvalidParams       = errors.New("Geçersiz istek")
	ErrInvalidTir          = errors.New("Geçersiz TIR bilgileri")
	ErrInvalidDocument     = errors.New("Geçersiz belge bilgileri")
	ErrInvalidShareLink    = errors.New("Geçersiz paylaşım linki bilgileri")
	ErrInvalidShareType    = errors.New("Geçersiz paylaşım tipi")
	ErrFileRequired        = errors.New("Dosya gereklidir")
	ErrFileTypeNotAllowed  = errors.New("Sadece PDF ve resim dosyaları (JPG, JPEG, PNG) yüklenebilir.")
	ErrFileTooLarge        = errors.New("Dosya boyutu 10MB sınırını aşıyor")
	ErrInvalidExpiryFormat = errors.New("Geçersiz son kullanma tarihi")

	// auth
	ErrUnauthorized       = errors.New("Yetkisiz erişim")
	ErrInvalidCredentials = errors.New("Geçersiz şifre")

	// not found
	ErrTirNotFound       = errors.New("TIR bulunamadı")
	ErrDocumentNotFound  = errors.New("Belge bulunamadı")
	ErrShareLinkNotFound = errors.New("Paylaşım linki bulunamadı")
	ErrShareLinkInvalid  = errors.New("Geçersiz veya pasif paylaşım linki")
	ErrShareLinkExpired  = errors.New("Paylaşım linkinin süresi dolmuş")

	// backends
	ErrStorageError  = errors.New("Dosya depolama servisi hatası")
	ErrDatabaseError = errors.New("Veritabanı hatası")
)

// Per-endpoint fallbacks for unexpected failures.
const (
	MsgListTirsFailed        = "TIR listesi alınırken hata oluştu"
	MsgGetTirFailed          = "TIR bilgileri alınırken hata oluştu"
	MsgCreateTirFailed       = "TIR oluşturulurken hata oluştu"
	MsgUpdateTirFailed       = "TIR güncellenirken hata oluştu"
	MsgDeleteTirFailed       = "TIR silinirken hata oluştu"
	MsgUploadDocumentFailed  = "Belge yüklenirken hata oluştu"
	MsgDeleteDocumentFailed  = "Belge silinirken hata oluştu"
	MsgCreateTirShareFailed  = "Paylaşım linki oluşturulurken hata oluştu"
	MsgCreateListShareFailed = "Liste paylaşım linki oluşturulurken hata oluştu"
	MsgListSharesFailed      = "Paylaşım linkleri alınırken hata oluştu"
	MsgUpdateShareFailed     = "Paylaşım linki güncellenirken hata oluştu"
	MsgDeleteShareFailed     = "Paylaşım linki silinirken hata oluştu"
	MsgPublicTirFailed       = "Paylaşılan TIR bilgileri alınırken hata oluştu"
	MsgPublicListFailed      = "Paylaşılan TIR listesi alınırken hata oluştu"
	MsgLoginFailed           = "Giriş yapılırken hata oluştu"

	MsgTirDeleted       = "TIR başarıyla silindi"
	MsgDocumentDeleted  = "Belge başarıyla silindi"
	MsgShareLinkDeleted = "Paylaşım linki başarıyla silindi"
)
