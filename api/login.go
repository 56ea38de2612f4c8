package api

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"variance-insight/auth"
	"variance-insight/logging"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

// driver sql à ouvrir pour chaque backend configurable
var dbDrivers = map[string]string{
	"mysql":    "mysql",
	"postgres": "postgres",
	"sqlite":   "sqlite3",
}

func LoginHandler(cfg *auth.Config, users *auth.UsersFile, loginLogger *logging.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != "POST" {
			http.Error(w, "Méthode non autorisée", http.StatusMethodNotAllowed)
			return
		}
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "JSON invalide", http.StatusBadRequest)
			loginLogger.Write("LOGIN FAIL (bad json) user=" + req.Username)
			return
		}
		username := req.Username
		var userHash, userSalt string
		isAdmin := false

		if cfg.Auth.UserBackend == "file" {
			u, ok := users.Users[username]
			if !ok {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				loginLogger.Write("LOGIN FAIL (no user) user=" + username)
				return
			}
			userHash, userSalt = u.Hash, u.Salt
			isAdmin = u.Admin

			passHash, _ := auth.ApplyHashMacro(cfg.Auth.HashMacro, req.Password, username, userSalt, cfg.Auth.Salt)
			if passHash != userHash {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				loginLogger.Write("LOGIN FAIL (wrong pass) user=" + username)
				return
			}
		} else if driver, ok := dbDrivers[cfg.Auth.UserBackend]; ok {
			db, err := sql.Open(driver, cfg.Auth.DBDSN)
			if err != nil {
				http.Error(w, "Erreur base de données", http.StatusInternalServerError)
				loginLogger.Write("LOGIN FAIL (db open) user=" + username)
				return
			}
			defer db.Close()

			userHash, userSalt, isAdmin, err = auth.GetUserFromDB(db, cfg.Auth.UserRequest, username, req.Password)
			if err != nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				loginLogger.Write("LOGIN FAIL (db no user) user=" + username)
				return
			}
			// if DBPassHash is true, it means the password hash was not checked
			// by db sql call above, so it needs to be done now
			if cfg.Auth.DBPassHash {
				passHash, _ := auth.ApplyHashMacro(cfg.Auth.DBHashMacro, req.Password, username, userSalt, cfg.Auth.Salt)
				if passHash != userHash {
					http.Error(w, "Unauthorized", http.StatusUnauthorized)
					loginLogger.Write("LOGIN FAIL (db wrong pass) user=" + username)
					return
				}
			}
		} else {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			loginLogger.Write("LOGIN FAIL (unknown backend) user=" + username)
			return
		}
		tokenString, err := auth.GenerateJWT(cfg.JWT.Secret, username, isAdmin, cfg.JWT.ExpirationMinutes)
		if err != nil {
			http.Error(w, "Erreur serveur", http.StatusInternalServerError)
			loginLogger.Write("LOGIN FAIL (jwt error) user=" + username)
			return
		}
		resp := map[string]string{"token": tokenString}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
		loginLogger.Write("LOGIN OK user=" + username)
	}
}
