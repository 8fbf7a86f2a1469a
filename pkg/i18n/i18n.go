package i18n

type Messages struct {
	AppTitle          string
	SearchingPrefix   string // prefix, threads
	Usage             string // program name
	ImpossiblePattern string // character
	BadThreads        string // raw argument
	SearchFailed      string // error
	ConfigFallback    string // error
	InspectAddress    string // address
}

func Get(lang string) Messages {
	switch lang {
	case "ru":
		return Messages{
			AppTitle:          "xrp-vanity",
			SearchingPrefix:   "Поиск префикса: %s - Потоков: %d\n\n",
			Usage:             "использование: '%[1]s <Threads> <Prefix>'\n\n%[1]s 4 rRob\n",
			ImpossiblePattern: "Невозможный шаблон; символ: '%c'\n",
			BadThreads:        "Число потоков должно быть положительным целым: %q\n",
			SearchFailed:      "Поиск остановлен: %v\n",
			ConfigFallback:    "загрузка конфигурации: %v (используются значения по умолчанию)\n",
			InspectAddress:    "Адрес: %s\n",
		}
	default: // "en"
		return Messages{
			AppTitle:          "xrp-vanity",
			SearchingPrefix:   "Searching Prefix: %s - Threads: %d\n\n",
			Usage:             "usage:   '%[1]s <Threads> <Prefix>'\n\n%[1]s 4 rRob\n",
			ImpossiblePattern: "Impossible pattern; Character: '%c'\n",
			BadThreads:        "Threads must be a positive integer: %q\n",
			SearchFailed:      "Search stopped: %v\n",
			ConfigFallback:    "load app config: %v (using defaults)\n",
			InspectAddress:    "Address: %s\n",
		}
	}
}
