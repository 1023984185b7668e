package httpapi

import (
	"net/http"
	"sync/atomic"

	"jobtracker-engine/internal/config"
	"jobtracker-engine/internal/secrets"
)

type SecretsHandler struct {
	CfgVal *atomic.Value // stores config.Config
}

type setRemoteKeyReq struct {
	Key string `json:"key"`
}

func (h SecretsHandler) account() string {
	return h.CfgVal.Load().(config.Config).Remote.KeyringAccount
}

func (h SecretsHandler) SetRemoteKey(w http.ResponseWriter, r *http.Request) {
	var req setRemoteKeyReq
	if err := decodeStrict(r, &req); err != nil {
		WriteError(w, r, http.StatusBadRequest, "invalid_json", "invalid JSON: "+err.Error())
		return
	}
	if err := secrets.SetRemoteKey(h.account(), req.Key); err != nil {
		WriteError(w, r, http.StatusBadRequest, "keyring", "failed to store key: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h SecretsHandler) DeleteRemoteKey(w http.ResponseWriter, r *http.Request) {
	if err := secrets.DeleteRemoteKey(h.account()); err != nil {
		WriteError(w, r, http.StatusBadRequest, "keyring", "failed to remove key: "+err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
