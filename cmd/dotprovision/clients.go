package main

import (
	"github.com/benithors/dotprovision/internal/dnsprovider"
	"github.com/benithors/dotprovision/internal/dnsprovider/cloudflare"
	"github.com/benithors/dotprovision/internal/registrar"
	"github.com/benithors/dotprovision/internal/registrar/namecom"
)

func (a *app) userAgent() string {
	return "dotprovision/" + a.Version
}

func (a *app) newRegistrar() (registrar.Client, error) {
	return namecom.NewClient(namecom.Options{
		Username:  a.cfg.NameCom.Username,
		Token:     a.cfg.NameCom.Token,
		BaseURL:   a.cfg.NameCom.BaseURL,
		Timeout:   a.cfg.Timeout,
		UserAgent: a.userAgent(),
		Logger:    a.log,
	})
}

func (a *app) newDNSProvider() (dnsprovider.Client, error) {
	return cloudflare.NewClient(cloudflare.Options{
		Email:     a.cfg.Cloudflare.Email,
		APIKey:    a.cfg.Cloudflare.APIKey,
		BaseURL:   a.cfg.Cloudflare.BaseURL,
		Timeout:   a.cfg.Timeout,
		UserAgent: a.userAgent(),
		Logger:    a.log,
	})
}
