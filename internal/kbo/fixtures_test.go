package kbo

const entityPageHTML = `<!DOCTYPE html>
<html><head><title>Banque-Carrefour des Entreprises</title></head>
<body>
<div id="page">
<div id="table">
<table>
<tr><td colspan="3"><h2>Généralités</h2></td></tr>
<tr><td class="QL">Numéro d'entreprise:</td><td class="QL">0403.394.333</td></tr>
<tr><td class="QL">Statut:</td><td class="QL"><strong><span class="pageactief">Actif</span></strong></td></tr>
<tr><td class="QL">Date de début:</td><td class="QL">1 janvier 1933</td></tr>
<tr><td class="QL">Dénomination:</td><td class="QL">ACME&nbsp;SA<br><span class="upd">Dénomination en français, depuis le 3 mars 2010</span></td></tr>
<tr><td class="QL">Adresse du siège:</td><td class="QL">Rue de la Loi&nbsp;16<br>1000 Bruxelles<br><span class="upd">Depuis le 3 mars 2010</span></td></tr>
<tr><td class="QL">Forme légale:</td><td class="QL">Société anonyme<br><span class="upd">Depuis le 1 mai 2019</span></td></tr>
<tr><td colspan="3"><h2>Activités TVA Code Nacebel version 2008</h2></td></tr>
<tr><td colspan="3" class="QL">TVA 2008 <a href="nacebelcode.html?code=70100">70.100</a> - Activités des sièges sociaux</td></tr>
<tr><td colspan="3" class="QL">TVA 2008 <a href="nacebelcode.html?code=62010">62.010</a> - Programmation informatique</td></tr>
<tr><td colspan="3" class="QL">ONSS2008 <a href="nacebelcode.html?code=70100">70.100</a> - Activités des sièges sociaux</td></tr>
<tr><td colspan="3"><h2>Liens entre entités</h2></td></tr>
<tr><td colspan="3" class="QL">Absorbée par <a href="toonondernemingps.html?ondernemingsnummer=0999999999">12.345</a></td></tr>
</table>
</div>
</div>
</body></html>`

const dutchEntityPageHTML = `<html><body><div id="table"><table>
<tr><td class="QL">Naam:</td><td class="QL">Bakkerij Peeters BV</td></tr>
<tr><td class="QL">Status:</td><td class="QL">Actief</td></tr>
<tr><td class="QL">Rechtsvorm:</td><td class="QL">Besloten vennootschap</td></tr>
<tr><td class="QL">Adres van de zetel:</td><td class="QL">Kerkstraat 1A bus 2<br>2000 Antwerpen</td></tr>
<tr><td colspan="2"><h2>Activiteiten btw Nacebelcode versie 2008</h2></td></tr>
<tr><td colspan="2" class="QL">Btw2008 <a href="#">10.711</a> - Ambachtelijke vervaardiging van brood</td></tr>
</table></div></body></html>`

const unknownEntityPageHTML = `<html><body><div id="table"><table>
<tr><td class="QL">Aucune entreprise trouvée</td></tr>
</table></div></body></html>`

const establishmentPageHTML = `<!DOCTYPE html>
<html><body>
<table id="vestiginglist">
<thead><tr><th>#</th><th>Statut</th><th>Numéro</th><th>Date de début</th><th>Dénomination</th><th>Adresse</th></tr></thead>
<tbody>
<tr>
<td>1</td>
<td>Actif</td>
<td><a href="toonvestigingps.html?vestigingsnummer=2123456789">2.123.456.789</a></td>
<td>1 janvier 2000</td>
<td>ACME Bruxelles</td>
<td>Rue de la Loi 16<br>1000&nbsp;Bruxelles<br>Depuis le 1 janvier 2000</td>
</tr>
<tr><td colspan="6">Pas d'autres unités</td></tr>
<tr>
<td>2</td>
<td>Arrêté</td>
<td><a href="toonvestigingps.html?vestigingsnummer=2234567890">2.234.567.890</a></td>
<td>15 juin 2012</td>
<td>ACME Gent</td>
<td>Veldstraat 3<br>9000 Gent<br>Sinds 15 juni 2012</td>
</tr>
</tbody>
</table>
</body></html>`
