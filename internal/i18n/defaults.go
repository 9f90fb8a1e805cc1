package i18n

// Built-in catalog. Texts match the original Dori-Bell deployment;
// deployments that want different buttons or wording point CATALOG_FILE
// at a YAML override instead of recompiling.

const DefaultLocale = "en"

func defaultButtons() []Button {
	return []Button{
		{ID: "delivery", Icon: "🛵"},
		{ID: "guest", Icon: "👤"},
		{ID: "urgent", Icon: "🚨"},
	}
}

func defaultLocales() map[string]Strings {
	return map[string]Strings{
		"en": {
			Labels: map[string]string{
				"delivery": "Delivery",
				"guest":    "Guest",
				"urgent":   "Urgent",
			},
			Messages: map[string]string{
				"delivery": "🛵 *Delivery Alert!* Food or package at the door.",
				"guest":    "🔔 *Ding Dong!* A guest is waiting for you.",
				"urgent":   "🚨 *URGENT!* Someone needs immediate attention at the door.",
			},
			UI: map[string]string{
				"title":          "Dori-Bell",
				"subtitle":       "Smart Access System",
				"security_check": "Please solve the security check to ring the doorbell.",
				"ringing":        "Ringing the bell...",
				"notified":       "Host notified! Please wait.",
				"error":          "Error: ",
				"conn_failed":    "Connection failed.",
				"call_host":      "Call Host",
			},
		},
		"he": {
			Labels: map[string]string{
				"delivery": "משלוח",
				"guest":    "אורח",
				"urgent":   "דחוף",
			},
			Messages: map[string]string{
				"delivery": "🛵 *התראת משלוח!* אוכל או חבילה בדלת.",
				"guest":    "🔔 *דינג דונג!* אורח ממתין לך.",
				"urgent":   "🚨 *דחוף!* מישהו זקוק לתשומת לב מיידית בדלת.",
			},
			UI: map[string]string{
				"title":          "Dori-Bell",
				"subtitle":       "מערכת גישה חכמה",
				"security_check": "אנא עברו את בדיקת האבטחה כדי לצלצל בפעמון.",
				"ringing":        "מצלצל בפעמון...",
				"notified":       "המארח קיבל הודעה! נא להמתין.",
				"error":          "שגיאה: ",
				"conn_failed":    "התחברות נכשלה.",
				"call_host":      "התקשר למארח",
			},
		},
		"ar": {
			Labels: map[string]string{
				"delivery": "توصيل",
				"guest":    "ضيف",
				"urgent":   "عاجل",
			},
			Messages: map[string]string{
				"delivery": "🛵 *تنبيه توصيل!* طعام أو طرد عند الباب.",
				"guest":    "🔔 *دينغ دونغ!* ضيف ينتظرك.",
				"urgent":   "🚨 *عاجل!* شخص ما يحتاج إلى اهتمام فوري عند الباب.",
			},
			UI: map[string]string{
				"title":          "Dori-Bell",
				"subtitle":       "نظام الوصول الذكي",
				"security_check": "يرجى حل التحقق الأمني لقرع الجرس.",
				"ringing":        "يرن الجرس...",
				"notified":       "تم إخطار المضيف! يرجى الانتظار.",
				"error":          "خطأ: ",
				"conn_failed":    "فشل الاتصال.",
				"call_host":      "اتصل بالمضيف",
			},
		},
		"ru": {
			Labels: map[string]string{
				"delivery": "Доставка",
				"guest":    "Гость",
				"urgent":   "Срочно",
			},
			Messages: map[string]string{
				"delivery": "🛵 *Оповещение о доставке!* Еда или посылка у двери.",
				"guest":    "🔔 *Динь-дон!* Вас ждет гость.",
				"urgent":   "🚨 *СРОЧНО!* Кому-то требуется немедленное внимание у двери.",
			},
			UI: map[string]string{
				"title":          "Dori-Bell",
				"subtitle":       "Умная система доступа",
				"security_check": "Пожалуйста, пройдите проверку безопасности, чтобы позвонить в звонок.",
				"ringing":        "Звоним в звонок...",
				"notified":       "Хозяин уведомлен! Пожалуйста, подождите.",
				"error":          "Ошибка: ",
				"conn_failed":    "Ошибка подключения.",
				"call_host":      "Позвонить хозяину",
			},
		},
		"fr": {
			Labels: map[string]string{
				"delivery": "Livraison",
				"guest":    "Invité",
				"urgent":   "Urgent",
			},
			Messages: map[string]string{
				"delivery": "🛵 *Alerte Livraison !* Nourriture ou colis à la porte.",
				"guest":    "🔔 *Ding Dong !* Un invité vous attend.",
				"urgent":   "🚨 *URGENT !* Quelqu'un a besoin d'une attention immédiate à la porte.",
			},
			UI: map[string]string{
				"title":          "Dori-Bell",
				"subtitle":       "Système d'Accès Intelligent",
				"security_check": "Veuillez résoudre le contrôle de sécurité pour sonner.",
				"ringing":        "Appel en cours...",
				"notified":       "Hôte prévenu ! Veuillez patienter.",
				"error":          "Erreur : ",
				"conn_failed":    "Échec de la connexion.",
				"call_host":      "Appeler l'hôte",
			},
		},
	}
}

// Default returns the built-in catalog. It always validates; a failure
// here is a programming error.
func Default() *Catalog {
	c, err := New(DefaultLocale, defaultButtons(), defaultLocales())
	if err != nil {
		panic(err)
	}
	return c
}
