package render

import (
	"fmt"

	"github.com/MATrsx/freegameping/internal/models"
)

// T returns the translation of key for loc, falling back to English for
// locales or keys without a translation.
func T(loc models.Locale, key string) string {
	if table, ok := translations[loc]; ok {
		if s, ok := table[key]; ok {
			return s
		}
	}
	if s, ok := translations[models.LocaleEnglish][key]; ok {
		return s
	}
	return key
}

// Tf is T followed by Sprintf.
func Tf(loc models.Locale, key string, args ...any) string {
	return fmt.Sprintf(T(loc, key), args...)
}

var translations = map[models.Locale]map[string]string{
	models.LocaleEnglish: {
		"headline":           "**New free game on %s!**",
		"free_until":         "Free until",
		"original_price":     "Original price",
		"rating":             "Rating",
		"scan_none":          "Scan finished: nothing new found.",
		"scan_done":          "Scan finished: %d new free game(s) announced.",
		"scan_fails":         "(%d deliveries failed)",
		"scan_running":       "A scan is already running, please try again in a moment.",
		"scan_started":       "Checking storefronts for free games…",
		"scan_failed":        "The scan failed. Please try again later.",
		"status_active":      "Announcements are **active**.",
		"status_paused":      "Announcements are **paused**.",
		"status_channel":     "Channel",
		"status_thread":      "Shared thread",
		"status_split":       "Per-storefront threads",
		"status_storefronts": "Watched storefronts",
		"status_mentions":    "Mentioned roles",
		"status_language":    "Language",
		"on":                 "on",
		"off":                "off",
		"none":               "none",
		"channel_set":        "Free game announcements will be posted in <#%s>.",
		"thread_set":         "Announcements will be posted in the thread <#%s>.",
		"thread_cleared":     "Shared thread removed; announcements go to the channel again.",
		"split_on":           "Per-storefront threads enabled.",
		"split_off":          "Per-storefront threads disabled.",
		"storethread_set":    "%s announcements will be posted in <#%s>.",
		"sf_added":           "%s added to the watched storefronts.",
		"sf_removed":         "%s removed from the watched storefronts.",
		"sf_last":            "At least one storefront must remain watched.",
		"sf_unknown":         "Unknown storefront. Supported: %s.",
		"mention_added":      "<@&%s> will be mentioned on announcements.",
		"mention_removed":    "<@&%s> will no longer be mentioned.",
		"language_set":       "Announcement language set to %s.",
		"paused":             "Announcements paused. Use `/setup resume` to re-enable them.",
		"resumed":            "Announcements resumed.",
		"not_configured":     "This server is not set up yet. Run `/setup channel` first.",
		"unknown_command":    "Unknown command.",
		"error_generic":      "Something went wrong. Please try again.",
	},
	models.LocaleGerman: {
		"headline":           "**Neues Gratis-Spiel im %s!**",
		"free_until":         "Kostenlos bis",
		"original_price":     "Originalpreis",
		"rating":             "Bewertung",
		"scan_none":          "Suche abgeschlossen: nichts Neues gefunden.",
		"scan_done":          "Suche abgeschlossen: %d neue(s) Gratis-Spiel(e) angekündigt.",
		"scan_fails":         "(%d Zustellungen fehlgeschlagen)",
		"scan_running":       "Eine Suche läuft bereits, bitte versuche es gleich erneut.",
		"scan_started":       "Shops werden nach Gratis-Spielen durchsucht…",
		"scan_failed":        "Die Suche ist fehlgeschlagen. Bitte später erneut versuchen.",
		"status_active":      "Ankündigungen sind **aktiv**.",
		"status_paused":      "Ankündigungen sind **pausiert**.",
		"status_channel":     "Kanal",
		"status_thread":      "Gemeinsamer Thread",
		"status_split":       "Threads pro Shop",
		"status_storefronts": "Beobachtete Shops",
		"status_mentions":    "Erwähnte Rollen",
		"status_language":    "Sprache",
		"on":                 "an",
		"off":                "aus",
		"none":               "keine",
		"channel_set":        "Gratis-Spiele werden in <#%s> angekündigt.",
		"thread_set":         "Ankündigungen erscheinen im Thread <#%s>.",
		"thread_cleared":     "Gemeinsamer Thread entfernt; Ankündigungen gehen wieder in den Kanal.",
		"split_on":           "Threads pro Shop aktiviert.",
		"split_off":          "Threads pro Shop deaktiviert.",
		"storethread_set":    "%s-Ankündigungen erscheinen in <#%s>.",
		"sf_added":           "%s zu den beobachteten Shops hinzugefügt.",
		"sf_removed":         "%s von den beobachteten Shops entfernt.",
		"sf_last":            "Mindestens ein Shop muss beobachtet bleiben.",
		"sf_unknown":         "Unbekannter Shop. Unterstützt: %s.",
		"mention_added":      "<@&%s> wird bei Ankündigungen erwähnt.",
		"mention_removed":    "<@&%s> wird nicht mehr erwähnt.",
		"language_set":       "Sprache für Ankündigungen auf %s gesetzt.",
		"paused":             "Ankündigungen pausiert. Mit `/setup resume` wieder aktivieren.",
		"resumed":            "Ankündigungen fortgesetzt.",
		"not_configured":     "Dieser Server ist noch nicht eingerichtet. Führe zuerst `/setup channel` aus.",
		"unknown_command":    "Unbekannter Befehl.",
		"error_generic":      "Etwas ist schiefgelaufen. Bitte erneut versuchen.",
	},
	models.LocaleSpanish: {
		"headline":           "**¡Nuevo juego gratis en %s!**",
		"free_until":         "Gratis hasta",
		"original_price":     "Precio original",
		"rating":             "Valoración",
		"scan_none":          "Búsqueda terminada: no hay nada nuevo.",
		"scan_done":          "Búsqueda terminada: %d juego(s) gratis anunciado(s).",
		"scan_fails":         "(%d entregas fallidas)",
		"scan_running":       "Ya hay una búsqueda en curso, inténtalo de nuevo en un momento.",
		"scan_started":       "Buscando juegos gratis en las tiendas…",
		"scan_failed":        "La búsqueda falló. Inténtalo más tarde.",
		"status_active":      "Los anuncios están **activos**.",
		"status_paused":      "Los anuncios están **pausados**.",
		"status_channel":     "Canal",
		"status_thread":      "Hilo compartido",
		"status_split":       "Hilos por tienda",
		"status_storefronts": "Tiendas vigiladas",
		"status_mentions":    "Roles mencionados",
		"status_language":    "Idioma",
		"on":                 "sí",
		"off":                "no",
		"none":               "ninguno",
		"channel_set":        "Los juegos gratis se anunciarán en <#%s>.",
		"thread_set":         "Los anuncios se publicarán en el hilo <#%s>.",
		"thread_cleared":     "Hilo compartido eliminado; los anuncios vuelven al canal.",
		"split_on":           "Hilos por tienda activados.",
		"split_off":          "Hilos por tienda desactivados.",
		"storethread_set":    "Los anuncios de %s se publicarán en <#%s>.",
		"sf_added":           "%s añadida a las tiendas vigiladas.",
		"sf_removed":         "%s eliminada de las tiendas vigiladas.",
		"sf_last":            "Debe quedar al menos una tienda vigilada.",
		"sf_unknown":         "Tienda desconocida. Compatibles: %s.",
		"mention_added":      "<@&%s> será mencionado en los anuncios.",
		"mention_removed":    "<@&%s> ya no será mencionado.",
		"language_set":       "Idioma de los anuncios cambiado a %s.",
		"paused":             "Anuncios pausados. Usa `/setup resume` para reactivarlos.",
		"resumed":            "Anuncios reanudados.",
		"not_configured":     "Este servidor aún no está configurado. Ejecuta `/setup channel` primero.",
		"unknown_command":    "Comando desconocido.",
		"error_generic":      "Algo salió mal. Inténtalo de nuevo.",
	},
	models.LocaleFrench: {
		"headline":           "**Nouveau jeu gratuit sur %s !**",
		"free_until":         "Gratuit jusqu'au",
		"original_price":     "Prix d'origine",
		"rating":             "Note",
		"scan_none":          "Recherche terminée : rien de nouveau.",
		"scan_done":          "Recherche terminée : %d nouveau(x) jeu(x) gratuit(s) annoncé(s).",
		"scan_fails":         "(%d envois échoués)",
		"scan_running":       "Une recherche est déjà en cours, réessayez dans un instant.",
		"scan_started":       "Recherche de jeux gratuits en cours…",
		"scan_failed":        "La recherche a échoué. Réessayez plus tard.",
		"status_active":      "Les annonces sont **actives**.",
		"status_paused":      "Les annonces sont **en pause**.",
		"status_channel":     "Salon",
		"status_thread":      "Fil partagé",
		"status_split":       "Fils par boutique",
		"status_storefronts": "Boutiques suivies",
		"status_mentions":    "Rôles mentionnés",
		"status_language":    "Langue",
		"on":                 "oui",
		"off":                "non",
		"none":               "aucun",
		"channel_set":        "Les jeux gratuits seront annoncés dans <#%s>.",
		"thread_set":         "Les annonces seront publiées dans le fil <#%s>.",
		"thread_cleared":     "Fil partagé supprimé ; les annonces reviennent dans le salon.",
		"split_on":           "Fils par boutique activés.",
		"split_off":          "Fils par boutique désactivés.",
		"storethread_set":    "Les annonces %s seront publiées dans <#%s>.",
		"sf_added":           "%s ajoutée aux boutiques suivies.",
		"sf_removed":         "%s retirée des boutiques suivies.",
		"sf_last":            "Au moins une boutique doit rester suivie.",
		"sf_unknown":         "Boutique inconnue. Prises en charge : %s.",
		"mention_added":      "<@&%s> sera mentionné dans les annonces.",
		"mention_removed":    "<@&%s> ne sera plus mentionné.",
		"language_set":       "Langue des annonces définie sur %s.",
		"paused":             "Annonces en pause. Utilisez `/setup resume` pour les réactiver.",
		"resumed":            "Annonces réactivées.",
		"not_configured":     "Ce serveur n'est pas encore configuré. Lancez d'abord `/setup channel`.",
		"unknown_command":    "Commande inconnue.",
		"error_generic":      "Une erreur est survenue. Veuillez réessayer.",
	},
	models.LocaleItalian: {
		"headline":           "**Nuovo gioco gratuito su %s!**",
		"free_until":         "Gratis fino al",
		"original_price":     "Prezzo originale",
		"rating":             "Valutazione",
		"scan_none":          "Ricerca completata: niente di nuovo.",
		"scan_done":          "Ricerca completata: %d nuovo/i gioco/i gratuito/i annunciato/i.",
		"scan_fails":         "(%d consegne non riuscite)",
		"scan_running":       "Una ricerca è già in corso, riprova tra poco.",
		"scan_started":       "Ricerca di giochi gratuiti in corso…",
		"scan_failed":        "La ricerca non è riuscita. Riprova più tardi.",
		"status_active":      "Gli annunci sono **attivi**.",
		"status_paused":      "Gli annunci sono **in pausa**.",
		"status_channel":     "Canale",
		"status_thread":      "Discussione condivisa",
		"status_split":       "Discussioni per negozio",
		"status_storefronts": "Negozi seguiti",
		"status_mentions":    "Ruoli menzionati",
		"status_language":    "Lingua",
		"on":                 "sì",
		"off":                "no",
		"none":               "nessuno",
		"channel_set":        "I giochi gratuiti saranno annunciati in <#%s>.",
		"thread_set":         "Gli annunci saranno pubblicati nella discussione <#%s>.",
		"thread_cleared":     "Discussione condivisa rimossa; gli annunci tornano nel canale.",
		"split_on":           "Discussioni per negozio attivate.",
		"split_off":          "Discussioni per negozio disattivate.",
		"storethread_set":    "Gli annunci di %s saranno pubblicati in <#%s>.",
		"sf_added":           "%s aggiunto ai negozi seguiti.",
		"sf_removed":         "%s rimosso dai negozi seguiti.",
		"sf_last":            "Almeno un negozio deve rimanere seguito.",
		"sf_unknown":         "Negozio sconosciuto. Supportati: %s.",
		"mention_added":      "<@&%s> sarà menzionato negli annunci.",
		"mention_removed":    "<@&%s> non sarà più menzionato.",
		"language_set":       "Lingua degli annunci impostata su %s.",
		"paused":             "Annunci in pausa. Usa `/setup resume` per riattivarli.",
		"resumed":            "Annunci ripresi.",
		"not_configured":     "Questo server non è ancora configurato. Esegui prima `/setup channel`.",
		"unknown_command":    "Comando sconosciuto.",
		"error_generic":      "Qualcosa è andato storto. Riprova.",
	},
	models.LocalePolish: {
		"headline":           "**Nowa darmowa gra w %s!**",
		"free_until":         "Za darmo do",
		"original_price":     "Cena oryginalna",
		"rating":             "Ocena",
		"scan_none":          "Skanowanie zakończone: nic nowego.",
		"scan_done":          "Skanowanie zakończone: ogłoszono %d nowych darmowych gier.",
		"scan_fails":         "(%d dostaw nie powiodło się)",
		"scan_running":       "Skanowanie już trwa, spróbuj ponownie za chwilę.",
		"scan_started":       "Sprawdzanie sklepów w poszukiwaniu darmowych gier…",
		"scan_failed":        "Skanowanie nie powiodło się. Spróbuj później.",
		"status_active":      "Ogłoszenia są **aktywne**.",
		"status_paused":      "Ogłoszenia są **wstrzymane**.",
		"status_channel":     "Kanał",
		"status_thread":      "Wspólny wątek",
		"status_split":       "Wątki per sklep",
		"status_storefronts": "Obserwowane sklepy",
		"status_mentions":    "Wzmiankowane role",
		"status_language":    "Język",
		"on":                 "tak",
		"off":                "nie",
		"none":               "brak",
		"channel_set":        "Darmowe gry będą ogłaszane w <#%s>.",
		"thread_set":         "Ogłoszenia będą publikowane w wątku <#%s>.",
		"thread_cleared":     "Wspólny wątek usunięty; ogłoszenia wracają na kanał.",
		"split_on":           "Wątki per sklep włączone.",
		"split_off":          "Wątki per sklep wyłączone.",
		"storethread_set":    "Ogłoszenia %s będą publikowane w <#%s>.",
		"sf_added":           "Dodano %s do obserwowanych sklepów.",
		"sf_removed":         "Usunięto %s z obserwowanych sklepów.",
		"sf_last":            "Przynajmniej jeden sklep musi pozostać obserwowany.",
		"sf_unknown":         "Nieznany sklep. Obsługiwane: %s.",
		"mention_added":      "<@&%s> będzie wzmiankowany w ogłoszeniach.",
		"mention_removed":    "<@&%s> nie będzie już wzmiankowany.",
		"language_set":       "Język ogłoszeń ustawiony na %s.",
		"paused":             "Ogłoszenia wstrzymane. Użyj `/setup resume`, aby je wznowić.",
		"resumed":            "Ogłoszenia wznowione.",
		"not_configured":     "Ten serwer nie jest jeszcze skonfigurowany. Najpierw uruchom `/setup channel`.",
		"unknown_command":    "Nieznana komenda.",
		"error_generic":      "Coś poszło nie tak. Spróbuj ponownie.",
	},
	models.LocalePortuguese: {
		"headline":           "**Novo jogo grátis na %s!**",
		"free_until":         "Grátis até",
		"original_price":     "Preço original",
		"rating":             "Avaliação",
		"scan_none":          "Busca concluída: nada de novo.",
		"scan_done":          "Busca concluída: %d novo(s) jogo(s) grátis anunciado(s).",
		"scan_fails":         "(%d entregas falharam)",
		"scan_running":       "Uma busca já está em andamento, tente novamente em instantes.",
		"scan_started":       "Procurando jogos grátis nas lojas…",
		"scan_failed":        "A busca falhou. Tente novamente mais tarde.",
		"status_active":      "Os anúncios estão **ativos**.",
		"status_paused":      "Os anúncios estão **pausados**.",
		"status_channel":     "Canal",
		"status_thread":      "Tópico compartilhado",
		"status_split":       "Tópicos por loja",
		"status_storefronts": "Lojas acompanhadas",
		"status_mentions":    "Cargos mencionados",
		"status_language":    "Idioma",
		"on":                 "sim",
		"off":                "não",
		"none":               "nenhum",
		"channel_set":        "Jogos grátis serão anunciados em <#%s>.",
		"thread_set":         "Os anúncios serão publicados no tópico <#%s>.",
		"thread_cleared":     "Tópico compartilhado removido; os anúncios voltam para o canal.",
		"split_on":           "Tópicos por loja ativados.",
		"split_off":          "Tópicos por loja desativados.",
		"storethread_set":    "Anúncios da %s serão publicados em <#%s>.",
		"sf_added":           "%s adicionada às lojas acompanhadas.",
		"sf_removed":         "%s removida das lojas acompanhadas.",
		"sf_last":            "Pelo menos uma loja deve continuar acompanhada.",
		"sf_unknown":         "Loja desconhecida. Compatíveis: %s.",
		"mention_added":      "<@&%s> será mencionado nos anúncios.",
		"mention_removed":    "<@&%s> não será mais mencionado.",
		"language_set":       "Idioma dos anúncios definido como %s.",
		"paused":             "Anúncios pausados. Use `/setup resume` para reativá-los.",
		"resumed":            "Anúncios retomados.",
		"not_configured":     "Este servidor ainda não foi configurado. Execute `/setup channel` primeiro.",
		"unknown_command":    "Comando desconhecido.",
		"error_generic":      "Algo deu errado. Tente novamente.",
	},
	models.LocaleRussian: {
		"headline":           "**Новая бесплатная игра в %s!**",
		"free_until":         "Бесплатно до",
		"original_price":     "Обычная цена",
		"rating":             "Рейтинг",
		"scan_none":          "Проверка завершена: ничего нового.",
		"scan_done":          "Проверка завершена: анонсировано новых бесплатных игр: %d.",
		"scan_fails":         "(не доставлено: %d)",
		"scan_running":       "Проверка уже выполняется, попробуйте чуть позже.",
		"scan_started":       "Проверяем магазины на бесплатные игры…",
		"scan_failed":        "Проверка не удалась. Попробуйте позже.",
		"status_active":      "Анонсы **включены**.",
		"status_paused":      "Анонсы **приостановлены**.",
		"status_channel":     "Канал",
		"status_thread":      "Общая ветка",
		"status_split":       "Ветки по магазинам",
		"status_storefronts": "Отслеживаемые магазины",
		"status_mentions":    "Упоминаемые роли",
		"status_language":    "Язык",
		"on":                 "вкл",
		"off":                "выкл",
		"none":               "нет",
		"channel_set":        "Бесплатные игры будут анонсироваться в <#%s>.",
		"thread_set":         "Анонсы будут публиковаться в ветке <#%s>.",
		"thread_cleared":     "Общая ветка удалена; анонсы снова публикуются в канале.",
		"split_on":           "Ветки по магазинам включены.",
		"split_off":          "Ветки по магазинам отключены.",
		"storethread_set":    "Анонсы %s будут публиковаться в <#%s>.",
		"sf_added":           "%s добавлен в отслеживаемые магазины.",
		"sf_removed":         "%s удалён из отслеживаемых магазинов.",
		"sf_last":            "Хотя бы один магазин должен остаться отслеживаемым.",
		"sf_unknown":         "Неизвестный магазин. Поддерживаются: %s.",
		"mention_added":      "<@&%s> будет упоминаться в анонсах.",
		"mention_removed":    "<@&%s> больше не будет упоминаться.",
		"language_set":       "Язык анонсов изменён на %s.",
		"paused":             "Анонсы приостановлены. Используйте `/setup resume`, чтобы включить их снова.",
		"resumed":            "Анонсы возобновлены.",
		"not_configured":     "Этот сервер ещё не настроен. Сначала выполните `/setup channel`.",
		"unknown_command":    "Неизвестная команда.",
		"error_generic":      "Что-то пошло не так. Попробуйте ещё раз.",
	},
}
