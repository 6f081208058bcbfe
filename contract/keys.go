package contract

// State keys. Game-scoped records hang off "<kind>:<admin>:<code>" so a
// whole game tears down with one prefix delete.

const configKey = "config"

func gameKey(admin, code string) string { return "game:" + admin + ":" + code }

func poolKey(admin, code string) string { return "pool:" + admin + ":" + code }

func winnersKey(admin, code string) string { return "winners:" + admin + ":" + code }

func playerKey(admin, code, player string) string {
	return "player:" + admin + ":" + code + ":" + player
}

func playerPrefix(admin, code string) string { return "player:" + admin + ":" + code + ":" }
