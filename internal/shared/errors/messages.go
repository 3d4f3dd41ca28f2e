package errors

// Тексты, которые видит пользователь. Общие для сервера и клиента.
const (
	MsgFillAllFields    = "Lütfen tüm alanları doldurun."
	MsgInvalidEmail     = "Geçerli bir email adresi giriniz."
	MsgPasswordTooShort = "Şifre en az 6 karakter olmalıdır."
	MsgPasswordTooLong  = "Şifre en fazla 72 bayt olabilir."
	MsgEmailTaken       = "Bu email adresi zaten kullanılıyor."
	MsgServerConfig     = "Sunucu yapılandırma hatası."
	MsgServerError      = "Sunucu hatası. Lütfen daha sonra tekrar deneyin."
	MsgUserCreated      = "Kullanıcı başarıyla oluşturuldu."
	MsgUserNotFound     = "Kullanıcı bulunamadı."
	MsgWrongPassword    = "Yanlış şifre."
	MsgLoginOK          = "Giriş başarılı!"
	MsgProfileLoaded    = "Kullanıcı bilgileri getirildi."
	MsgTokenMissing     = "Yetkisiz erişim - Token bulunamadı"
	MsgTokenExpired     = "Token süresi dolmuş"
	MsgTokenInvalid     = "Geçersiz token"
	MsgBadRequestBody   = "Geçersiz istek gövdesi."
	MsgBadNoteID        = "Geçersiz not id."
	MsgNoteCreated      = "Not başarıyla eklendi"
	MsgNoteCreateFailed = "Not eklenirken hata oluştu"
	MsgNotesListFailed  = "Notlar getirilirken hata oluştu"
	MsgNoteFound        = "İlgili not getirildi"
	MsgNoteNotFound     = "İlgili not bulunamadı"
	MsgNoteUpdated      = "Not başarıyla güncellendi"
	MsgNoteUpdateFailed = "Not güncellenirken hata oluştu"
	MsgNoteDeleted      = "Not başarıyla silindi"
	MsgNoteDeleteFailed = "Not silinirken hata oluştu"
	MsgRequestTooLarge  = "İstek gövdesi çok büyük."
	MsgUnavailable      = "Servis şu anda kullanılamıyor."
)

// Клиентские сообщения.
const (
	MsgRegisterDefault   = "Kayıt başarılı"
	MsgLoginDefault      = "Giriş başarılı"
	MsgRegisterFailed    = "Kayıt işleminde bir hata oluştu"
	MsgLoginFailed       = "Giriş işleminde bir hata oluştu"
	MsgLoadUserFailed    = "Kullanıcı verisi yüklenemedi"
	MsgLogoutOK          = "Başarıyla çıkış yapıldı"
	MsgLogoutFailed      = "Çıkış işleminde bir hata oluştu"
	MsgNoChanges         = "Herhangi bir değişiklik yapmadınız."
	MsgNoteFieldsMissing = "Lütfen başlık ve içerik giriniz."
	MsgNoteIDMissing     = "Not id belirtilmedi."
	MsgTransport         = "Sunucuya ulaşılamadı. Lütfen bağlantınızı kontrol edin."
)
